package store

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dagss/lazycache/lazy"
)

// Config configures a Store.
type Config struct {
	// Backend is the storage behind the cache.
	// If nil, an unbounded in-memory backend is used.
	Backend Backend

	// Evaluate produces the concrete result of a tree on a cache miss.
	// If nil, lazy.Compute is used (which does not observe ctx; supply a
	// context-aware evaluator for cancellable computations).
	// The store never caches failures.
	Evaluate func(ctx context.Context, node *lazy.Expr) (any, error)

	// VerifyInputs re-hashes owned leaves before serving a result, failing
	// with lazy.ErrPurityViolation when a trust-no-mutation promise was
	// broken. Best-effort integrity check; off by default.
	VerifyInputs bool

	// Logger receives debug/warn logging. If nil, logging is disabled.
	Logger *zap.Logger

	// Meter receives cache metrics. If nil, metrics are disabled.
	Meter metric.Meter
}

// Shard count for the identity map. Power of two.
const liveShards = 16

type liveShard struct {
	mu      sync.RWMutex
	entries map[string]*Protected
}

// Store is a content-addressed cache over expression trees.
//
// GetOrCompute serializes concurrent callers per key: the first triggers
// evaluation and every caller for that key, including those that arrived
// mid-flight, receives the same *Protected instance or the same propagated
// failure. Distinct keys proceed independently; no lock is held across
// evaluation except the per-key flight.
//
// Returned instances are reference-stable within a process: repeated hits
// for one key yield the same *Protected, also over persistent backends. The
// identity map backing that guarantee retains entries for the process
// lifetime independent of backend eviction; only Invalidate and Release
// drop them. To keep the two aligned under a bounded backend, wire the
// backend's eviction notification to Release.
type Store struct {
	config  Config
	group   singleflight.Group
	metrics *storeMetrics
	live    [liveShards]liveShard
}

// New creates a Store, applying defaults for unset Config fields.
func New(config Config) (*Store, error) {
	if config.Backend == nil {
		config.Backend = NewMemory(MemoryConfig{})
	}
	if config.Evaluate == nil {
		config.Evaluate = func(_ context.Context, node *lazy.Expr) (any, error) { return node.Compute() }
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Meter == nil {
		config.Meter = noop.NewMeterProvider().Meter("lazycache/store")
	}

	metrics, err := newStoreMetrics(config.Meter)
	if err != nil {
		return nil, err
	}

	s := &Store{config: config, metrics: metrics}
	for i := range s.live {
		s.live[i].entries = make(map[string]*Protected)
	}
	return s, nil
}

// GetOrCompute returns the cached result for the tree's digest, evaluating
// at most once per key on miss. Evaluation failures propagate to every
// waiter for the key and are not cached.
func (s *Store) GetOrCompute(ctx context.Context, node *lazy.Expr) (*Protected, error) {
	if node == nil {
		return nil, ErrNilNode
	}
	digest, err := node.Digest()
	if err != nil {
		return nil, err
	}
	key := digest.String()

	if p, ok := s.lookupLive(key); ok {
		if err := s.verify(node); err != nil {
			return nil, err
		}
		s.metrics.hits.Add(ctx, 1)
		s.config.Logger.Debug("cache hit", zap.String("key", digest.Short()))
		return p, nil
	}

	// Per-key mutual exclusion: concurrent callers for this key share one
	// computation and one outcome. The computation runs on the context of
	// the caller that started it; if that caller is cancelled, every waiter
	// observes the same failure and nothing is cached. Hit/miss accounting
	// happens per caller after the flight resolves, so piggybacking waiters
	// are counted too; evaluations are recorded once, inside the flight.
	v, err, _ := s.group.Do(key, func() (any, error) {
		if p, ok := s.lookupLive(key); ok {
			if err := s.verify(node); err != nil {
				return nil, err
			}
			return flight{result: p, fromCache: true}, nil
		}

		if stored, ok, err := s.config.Backend.Get(ctx, key); err != nil {
			return nil, err
		} else if ok {
			// Serving a persisted result still honors the integrity check:
			// a stale owned input must surface, not a stale hit.
			if err := s.verify(node); err != nil {
				return nil, err
			}
			s.config.Logger.Debug("backend hit", zap.String("key", digest.Short()))
			return flight{result: s.storeLive(key, newProtected(digest, stored)), fromCache: true}, nil
		}

		if err := s.verify(node); err != nil {
			return nil, err
		}

		start := time.Now()
		result, err := s.config.Evaluate(ctx, node)
		s.metrics.recordEval(ctx, time.Since(start), err)
		if err != nil {
			// Failures are never cached.
			return nil, err
		}

		if err := s.config.Backend.PutIfAbsent(ctx, key, result); err != nil {
			// The computed result is still good; serve it and leave the
			// backend entry to a later computation.
			s.config.Logger.Warn("backend put failed",
				zap.String("key", digest.Short()), zap.Error(err))
		}
		s.config.Logger.Debug("computed", zap.String("key", digest.Short()),
			zap.Duration("elapsed", time.Since(start)))
		return flight{result: s.storeLive(key, newProtected(digest, result))}, nil
	})
	if err != nil {
		return nil, err
	}

	f := v.(flight)
	if f.fromCache {
		s.metrics.hits.Add(ctx, 1)
	} else {
		s.metrics.misses.Add(ctx, 1)
	}
	return f.result, nil
}

// flight is the shared outcome of one singleflight computation. fromCache
// distinguishes served-from-cache results from freshly evaluated ones for
// per-caller accounting.
type flight struct {
	result    *Protected
	fromCache bool
}

// Release drops the identity-map entry for a backend key, without touching
// the backend. Intended for wiring into a backend's eviction notification
// (for example MemoryConfig.OnEvict) so that an evicted key is recomputed
// instead of being served from the identity map forever. After Release, a
// later hit or recomputation yields a new *Protected instance. Idempotent.
func (s *Store) Release(key string) {
	shard := s.shard(key)
	shard.mu.Lock()
	delete(shard.entries, key)
	shard.mu.Unlock()
}

// Invalidate drops the entry for the tree's digest from the identity map
// and the backend. Idempotent.
func (s *Store) Invalidate(ctx context.Context, node *lazy.Expr) error {
	if node == nil {
		return ErrNilNode
	}
	digest, err := node.Digest()
	if err != nil {
		return err
	}
	key := digest.String()

	shard := s.shard(key)
	shard.mu.Lock()
	delete(shard.entries, key)
	shard.mu.Unlock()

	return s.config.Backend.Delete(ctx, key)
}

func (s *Store) verify(node *lazy.Expr) error {
	if !s.config.VerifyInputs {
		return nil
	}
	return lazy.Verify(node)
}

func (s *Store) shard(key string) *liveShard {
	return &s.live[xxhash.Sum64String(key)&(liveShards-1)]
}

func (s *Store) lookupLive(key string) (*Protected, bool) {
	shard := s.shard(key)
	shard.mu.RLock()
	p, ok := shard.entries[key]
	shard.mu.RUnlock()
	return p, ok
}

// storeLive records the canonical *Protected for a key. First writer wins,
// so concurrent backend hits cannot split identity.
func (s *Store) storeLive(key string, p *Protected) *Protected {
	shard := s.shard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if existing, ok := shard.entries[key]; ok {
		return existing
	}
	shard.entries[key] = p
	return p
}
