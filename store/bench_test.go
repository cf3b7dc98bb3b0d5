package store

import (
	"context"
	"testing"

	"github.com/dagss/lazycache/lazy"
)

func BenchmarkGetOrCompute_Hit(b *testing.B) {
	ctx := context.Background()
	s, err := New(Config{})
	if err != nil {
		b.Fatal(err)
	}
	x, err := lazy.Own([]float64{1, 2, 3})
	if err != nil {
		b.Fatal(err)
	}
	node := x.Add(4)
	if _, err := s.GetOrCompute(ctx, node); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.GetOrCompute(ctx, node); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetOrCompute_Parallel(b *testing.B) {
	ctx := context.Background()
	s, err := New(Config{})
	if err != nil {
		b.Fatal(err)
	}
	x, err := lazy.Own([]float64{1, 2, 3})
	if err != nil {
		b.Fatal(err)
	}
	node := x.Mul(2)
	if _, err := s.GetOrCompute(ctx, node); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := s.GetOrCompute(ctx, node); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkProtected_Value(b *testing.B) {
	vec := make([]float64, 1000)
	p := newProtected([32]byte{}, vec)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Value()
	}
}
