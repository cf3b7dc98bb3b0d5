package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagss/lazycache/lazy"
)

func newBadger(t *testing.T) *BadgerBackend {
	t.Helper()
	b, err := NewBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBadger_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	b := newBadger(t)

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.PutIfAbsent(ctx, "k", []float64{1, 2}))
	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, v)

	// Present key: no replacement.
	require.NoError(t, b.PutIfAbsent(ctx, "k", []float64{9}))
	v, _, _ = b.Get(ctx, "k")
	assert.Equal(t, []float64{1, 2}, v)

	require.NoError(t, b.Delete(ctx, "k"))
	require.NoError(t, b.Delete(ctx, "k"))
	_, ok, _ = b.Get(ctx, "k")
	assert.False(t, ok)
}

func TestBadger_ScalarRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBadger(t)

	require.NoError(t, b.PutIfAbsent(ctx, "n", int64(42)))
	v, ok, err := b.Get(ctx, "n")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), v)
}

func TestBadger_Closed(t *testing.T) {
	ctx := context.Background()
	b, err := NewBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, _, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.PutIfAbsent(ctx, "k", 1), ErrClosed)
	assert.ErrorIs(t, b.Delete(ctx, "k"), ErrClosed)
}

func TestBadger_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := NewBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, b.PutIfAbsent(ctx, "k", []float64{3, 4}))
	require.NoError(t, b.Close())

	reopened, err := NewBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 4}, v)
}

// TestBadger_StoreIntegration runs the store against the persistent backend:
// a result computed before close is a backend hit after reopening, with no
// re-evaluation, and stays reference-stable within the process.
func TestBadger_StoreIntegration(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	node := func() *lazy.Expr { return lazy.Add([]float64{1, 2, 3}, 4) }

	b, err := NewBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	s1, evals1 := countingStore(t, Config{Backend: b})
	p, err := s1.GetOrCompute(ctx, node())
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7}, p.Value())
	assert.Equal(t, int64(1), evals1.Load())
	require.NoError(t, b.Close())

	reopened, err := NewBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	s2, evals2 := countingStore(t, Config{Backend: reopened})
	p1, err := s2.GetOrCompute(ctx, node())
	require.NoError(t, err)
	p2, err := s2.GetOrCompute(ctx, node())
	require.NoError(t, err)

	assert.Equal(t, int64(0), evals2.Load(), "persisted key was re-evaluated")
	assert.Equal(t, []float64{5, 6, 7}, p1.Value())
	assert.Same(t, p1, p2)
}
