// Package prometheus exports search metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	s, _ := seedscan.New(q, seedscan.WithMetricsCollector(promcollector.New(reg)))
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements seedscan.MetricsCollector on Prometheus metrics.
type Collector struct {
	batches       prometheus.Counter
	seeds         prometheus.Counter
	batchDuration prometheus.Histogram
	matches       prometheus.Counter
	matchScore    prometheus.Histogram
	stageFlushes  *prometheus.CounterVec
	stageSeeds    *prometheus.CounterVec
}

type options struct {
	namespace   string
	constLabels prometheus.Labels
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace sets the metric namespace. Defaults to "seedscan".
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithConstLabels attaches labels to every metric, e.g. a worker name
// when several searches share a registry.
func WithConstLabels(l prometheus.Labels) Option {
	return func(o *options) {
		o.constLabels = l
	}
}

// New creates the metrics and registers them with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, optFns ...Option) *Collector {
	o := options{namespace: "seedscan"}
	for _, fn := range optFns {
		fn(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		batches: f.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "batches_total",
			Help:        "Completed search batches.",
			ConstLabels: o.constLabels,
		}),
		seeds: f.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "seeds_searched_total",
			Help:        "Seeds covered by completed batches.",
			ConstLabels: o.constLabels,
		}),
		batchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "batch_duration_seconds",
			Help:        "Wall time of one batch.",
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 10),
			ConstLabels: o.constLabels,
		}),
		matches: f.NewCounter(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "matches_total",
			Help:        "Reported seeds.",
			ConstLabels: o.constLabels,
		}),
		matchScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "match_score",
			Help:        "Score of reported seeds.",
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
			ConstLabels: o.constLabels,
		}),
		stageFlushes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "stage_flushes_total",
			Help:        "Stage buffer runs by stage and trigger.",
			ConstLabels: o.constLabels,
		}, []string{"stage", "trigger"}),
		stageSeeds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "stage_seeds_total",
			Help:        "Seeds forwarded into a stage buffer.",
			ConstLabels: o.constLabels,
		}, []string{"stage"}),
	}
}

// RecordBatch implements seedscan.MetricsCollector.
func (c *Collector) RecordBatch(seeds int, duration time.Duration) {
	c.batches.Inc()
	c.seeds.Add(float64(seeds))
	c.batchDuration.Observe(duration.Seconds())
}

// RecordMatch implements seedscan.MetricsCollector.
func (c *Collector) RecordMatch(score int) {
	c.matches.Inc()
	c.matchScore.Observe(float64(score))
}

// RecordStageFlush implements seedscan.MetricsCollector.
func (c *Collector) RecordStageFlush(stage, size int, timedOut bool) {
	trigger := "full"
	if timedOut {
		trigger = "timeout"
	}
	s := strconv.Itoa(stage)
	c.stageFlushes.WithLabelValues(s, trigger).Inc()
	c.stageSeeds.WithLabelValues(s).Add(float64(size))
}
