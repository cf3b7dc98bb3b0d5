package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerConfig configures the BadgerDB backend.
type BadgerConfig struct {
	// Path is the directory for the database files.
	// Ignored when InMemory is true.
	Path string

	// InMemory disables disk persistence. Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging.
	// If nil, internal logging is disabled.
	Logger *zap.Logger
}

// BadgerBackend is a Backend persisted in an embedded BadgerDB.
//
// Values are gob-encoded; concrete types stored through the empty interface
// must be registered with encoding/gob by the caller (the built-in scalar
// and []float64 results need no registration). Reference stability across
// hits is provided by the Store's identity map, so it holds within a
// process only.
type BadgerBackend struct {
	db *badger.DB
}

// NewBadger opens a BadgerDB backend.
func NewBadger(config BadgerConfig) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(config.Path).
		WithInMemory(config.InMemory).
		WithSyncWrites(config.SyncWrites)
	if config.Logger != nil {
		opts = opts.WithLogger(badgerLogger{config.Logger.Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("lazycache/store: opening badger at %q: %w", config.Path, err)
	}
	return &BadgerBackend{db: db}, nil
}

// Close releases the database. Further calls return ErrClosed.
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}

// Get retrieves and decodes the value stored under key.
func (b *BadgerBackend) Get(_ context.Context, key string) (any, bool, error) {
	if b.db.IsClosed() {
		return nil, false, ErrClosed
	}
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lazycache/store: badger get: %w", err)
	}

	v, err := decodePayload(raw)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// PutIfAbsent encodes and stores the value unless the key is present.
func (b *BadgerBackend) PutIfAbsent(_ context.Context, key string, value any) error {
	if b.db.IsClosed() {
		return ErrClosed
	}
	raw, err := encodePayload(value)
	if err != nil {
		return err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("lazycache/store: badger put: %w", err)
	}
	return nil
}

// Delete removes the value stored under key. Idempotent.
func (b *BadgerBackend) Delete(_ context.Context, key string) error {
	if b.db.IsClosed() {
		return ErrClosed
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("lazycache/store: badger delete: %w", err)
	}
	return nil
}

// payload boxes the value so gob can round-trip through the empty interface.
type payload struct {
	Value any
}

func init() {
	// Result kinds produced by the built-in operators; scalars are covered
	// by gob's own basic-type registrations. Anything else stored through a
	// persistent backend is registered by the caller.
	gob.Register([]float64(nil))
	gob.Register([]any(nil))
	gob.Register(map[string]any(nil))
}

func encodePayload(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload{Value: v}); err != nil {
		return nil, fmt.Errorf("lazycache/store: encoding value: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePayload(raw []byte) (any, error) {
	var p payload
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&p); err != nil {
		return nil, fmt.Errorf("lazycache/store: decoding value: %w", err)
	}
	return p.Value, nil
}

// badgerLogger adapts zap to BadgerDB's logger interface.
type badgerLogger struct {
	l *zap.SugaredLogger
}

func (b badgerLogger) Errorf(format string, args ...any)   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...any)    { b.l.Infof(format, args...) }
func (b badgerLogger) Debugf(format string, args ...any)   { b.l.Debugf(format, args...) }

var _ Backend = (*BadgerBackend)(nil)
