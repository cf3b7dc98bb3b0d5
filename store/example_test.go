package store_test

import (
	"context"
	"fmt"

	"github.com/dagss/lazycache/lazy"
	"github.com/dagss/lazycache/store"
)

func ExampleStore_GetOrCompute() {
	ctx := context.Background()
	s, _ := store.New(store.Config{})

	x, _ := lazy.Own([]float64{1, 2, 3})
	e := x.Add(4)

	// First call evaluates and caches.
	p, _ := s.GetOrCompute(ctx, e)
	fmt.Println("result:", p.Value())

	// A structurally equal tree built from raw values is the same key.
	rebuilt := lazy.Add([]float64{1, 2, 3}, 4)
	again, _ := s.GetOrCompute(ctx, rebuilt)
	fmt.Println("same instance:", p == again)

	// Cached results reject mutation.
	err := p.Set([]float64{0})
	fmt.Println("set:", err)
	// Output:
	// result: [5 6 7]
	// same instance: true
	// set: lazycache/store: cached result is write-protected
}

func ExampleMemoryConfig() {
	ctx := context.Background()
	backend := store.NewMemory(store.MemoryConfig{
		MaxEntries: 1,
		OnEvict:    func(key string) { fmt.Println("evicted a key") },
	})
	s, _ := store.New(store.Config{Backend: backend})

	_, _ = s.GetOrCompute(ctx, lazy.Add(1.0, 2.0))
	_, _ = s.GetOrCompute(ctx, lazy.Add(3.0, 4.0))
	// Output:
	// evicted a key
}
