package store

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// storeMetrics records cache behavior on an OpenTelemetry meter.
type storeMetrics struct {
	hits         metric.Int64Counter
	misses       metric.Int64Counter
	evals        metric.Int64Counter
	evalErrors   metric.Int64Counter
	evalDuration metric.Float64Histogram
}

func newStoreMetrics(meter metric.Meter) (*storeMetrics, error) {
	hits, err := meter.Int64Counter(
		"lazycache.store.hits",
		metric.WithDescription("Cache hits"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"lazycache.store.misses",
		metric.WithDescription("Cache misses"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	evals, err := meter.Int64Counter(
		"lazycache.store.evals",
		metric.WithDescription("Evaluations triggered by cache misses"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter(
		"lazycache.store.errors",
		metric.WithDescription("Failed evaluations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	evalDuration, err := meter.Float64Histogram(
		"lazycache.store.eval_duration_ms",
		metric.WithDescription("Evaluation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &storeMetrics{
		hits:         hits,
		misses:       misses,
		evals:        evals,
		evalErrors:   evalErrors,
		evalDuration: evalDuration,
	}, nil
}

func (m *storeMetrics) recordEval(ctx context.Context, d time.Duration, err error) {
	m.evals.Add(ctx, 1)
	m.evalDuration.Record(ctx, float64(d)/float64(time.Millisecond))
	if err != nil {
		m.evalErrors.Add(ctx, 1)
	}
}
