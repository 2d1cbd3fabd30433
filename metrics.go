package seedscan

import (
	"context"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see metric/prometheus).
//
// Methods are called from worker goroutines and must be safe for concurrent
// use. They run in the search hot path and should not block.
type MetricsCollector interface {
	// RecordBatch is called after each completed batch with the number of
	// seeds it covered and the time it took.
	RecordBatch(seeds int, duration time.Duration)

	// RecordMatch is called for every reported seed.
	RecordMatch(score int)

	// RecordStageFlush is called whenever a stage buffer runs. timedOut is
	// true when the buffer ran before it was full.
	RecordStageFlush(stage, size int, timedOut bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBatch(int, time.Duration)  {}
func (NoopMetricsCollector) RecordMatch(int)                 {}
func (NoopMetricsCollector) RecordStageFlush(int, int, bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BatchCount        atomic.Int64
	SeedCount         atomic.Int64
	BatchTotalNanos   atomic.Int64
	MatchCount        atomic.Int64
	BestScore         atomic.Int64
	StageFlushCount   atomic.Int64
	StageFlushSeeds   atomic.Int64
	StageTimeoutCount atomic.Int64
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(seeds int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.SeedCount.Add(int64(seeds))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
}

// RecordMatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatch(score int) {
	b.MatchCount.Add(1)
	for {
		cur := b.BestScore.Load()
		if int64(score) <= cur || b.BestScore.CompareAndSwap(cur, int64(score)) {
			return
		}
	}
}

// RecordStageFlush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStageFlush(_, size int, timedOut bool) {
	b.StageFlushCount.Add(1)
	b.StageFlushSeeds.Add(int64(size))
	if timedOut {
		b.StageTimeoutCount.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BatchCount:        b.BatchCount.Load(),
		SeedCount:         b.SeedCount.Load(),
		BatchAvgNanos:     b.getAvgBatchNanos(),
		MatchCount:        b.MatchCount.Load(),
		BestScore:         b.BestScore.Load(),
		StageFlushCount:   b.StageFlushCount.Load(),
		StageFlushSeeds:   b.StageFlushSeeds.Load(),
		StageTimeoutCount: b.StageTimeoutCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBatchNanos() int64 {
	count := b.BatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.BatchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BatchCount        int64
	SeedCount         int64
	BatchAvgNanos     int64
	MatchCount        int64
	BestScore         int64
	StageFlushCount   int64
	StageFlushSeeds   int64
	StageTimeoutCount int64
}

// observer forwards scheduler events to the metrics collector and logs
// timed-out stage flushes.
type observer struct {
	metrics MetricsCollector
	logger  *Logger
}

func (o observer) OnBatch(seeds int, d time.Duration) { o.metrics.RecordBatch(seeds, d) }

func (o observer) OnMatch(score int) { o.metrics.RecordMatch(score) }

func (o observer) OnStageFlush(stage, size int, timedOut bool) {
	o.metrics.RecordStageFlush(stage, size, timedOut)
	if timedOut {
		o.logger.LogStageFlush(context.Background(), stage, size)
	}
}
