package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seedscan"
)

var _ seedscan.MetricsCollector = (*Collector)(nil)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordBatch(1225, 3*time.Millisecond)
	c.RecordBatch(1225, 5*time.Millisecond)
	c.RecordMatch(4)
	c.RecordStageFlush(1, 8, false)
	c.RecordStageFlush(1, 2, true)
	c.RecordStageFlush(2, 8, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.batches))
	assert.Equal(t, 2450.0, testutil.ToFloat64(c.seeds))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.matches))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stageFlushes.WithLabelValues("1", "full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.stageFlushes.WithLabelValues("1", "timeout")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.stageSeeds.WithLabelValues("1")))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	// 5 single metrics, 3 flush series and 2 stage seed series.
	assert.Equal(t, 10, n)
}

func TestCollectorNamespaceAndLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg, WithNamespace("scan"), WithConstLabels(prometheus.Labels{"worker": "a"}))
	c.RecordMatch(1)

	n, err := testutil.GatherAndCount(reg, "scan_matches_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// A second collector with other const labels can share the registry.
	assert.NotPanics(t, func() {
		New(reg, WithNamespace("scan"), WithConstLabels(prometheus.Labels{"worker": "b"}))
	})
}

func TestCollectorInSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	q := &seedscan.Query{Must: []seedscan.Clause{{Type: "Boss", Value: "Any", Antes: []int{1}}}}
	_, err := seedscan.Run(t.Context(), q,
		seedscan.WithRandomSeeds(3000, 1),
		seedscan.WithLogger(seedscan.NoopLogger()),
		seedscan.WithMetricsCollector(c),
	)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, testutil.ToFloat64(c.seeds))
	assert.Equal(t, 3000.0, testutil.ToFloat64(c.matches))
}
