package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := InitMetricsWith(reg, "vrpbench", "test")

	m.RecordSolve("greedy", true, 150*time.Millisecond)
	m.RecordSolve("greedy", false, 10*time.Millisecond)
	m.RecordSolve("exact", true, time.Second)

	assert.InDelta(t, 1, testutil.ToFloat64(m.SolveTotal.WithLabelValues("greedy", "success")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SolveTotal.WithLabelValues("greedy", "error")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SolveTotal.WithLabelValues("exact", "success")), 1e-9)
}

func TestRecordSolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := InitMetricsWith(reg, "vrpbench", "test")

	m.RecordSolution("greedy", "sample-10", 123.5)
	assert.InDelta(t, 123.5, testutil.ToFloat64(m.SolutionDistance.WithLabelValues("greedy", "sample-10")), 1e-9)
}

func TestRecordCacheLookup(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := InitMetricsWith(reg, "vrpbench", "test")

	m.RecordCacheLookup(true)
	m.RecordCacheLookup(true)
	m.RecordCacheLookup(false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.CacheHitsTotal), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheMissesTotal), 1e-9)
}

func TestRuntimeCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewRuntimeCollector("vrpbench", "test")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestTimer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := InitMetricsWith(reg, "vrpbench", "test")

	timer := NewTimer(m.SolveDuration, "greedy")
	time.Sleep(time.Millisecond)
	d := timer.ObserveDuration()
	assert.Greater(t, d, time.Duration(0))
}
