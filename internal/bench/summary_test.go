package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsSummaryEmpty(t *testing.T) {
	h := newHarness(t)

	s := h.ResultsSummary()
	assert.Equal(t, 0, s.TotalResults)
	assert.Nil(t, s.Solvers)
}

func TestResultsSummary(t *testing.T) {
	crasher := newStub("crasher", 0)
	crasher.panics = true
	h := newHarness(t, newStub("greedy", 10), newStub("exact", 8), crasher)
	require.NoError(t, h.LoadInstance(benchInstance(t, "a")))
	require.NoError(t, h.LoadInstance(benchInstance(t, "b")))

	_, err := h.RunFullBenchmark(context.Background(), nil, nil, 0)
	require.NoError(t, err)

	s := h.ResultsSummary()
	assert.Equal(t, 6, s.TotalResults)
	assert.Equal(t, 4, s.SuccessfulResults)
	assert.InDelta(t, 4.0/6.0, s.OverallSuccessRate, 1e-9)
	assert.Equal(t, 2, s.UniqueInstances)
	assert.Equal(t, 3, s.UniqueSolvers)

	greedy := s.Solvers["greedy"]
	require.NotNil(t, greedy)
	assert.Equal(t, 2, greedy.Runs)
	assert.Equal(t, 2, greedy.Successful)
	assert.Equal(t, 1.0, greedy.SuccessRate)
	require.NotNil(t, greedy.AvgDistance)
	assert.Equal(t, 10.0, *greedy.AvgDistance)
	assert.Equal(t, 10.0, *greedy.BestDistance)

	// A solver with zero successes reports a rate of 0 and no aggregates.
	failed := s.Solvers["crasher"]
	require.NotNil(t, failed)
	assert.Equal(t, 2, failed.Runs)
	assert.Equal(t, 0, failed.Successful)
	assert.Equal(t, 0.0, failed.SuccessRate)
	assert.Nil(t, failed.AvgDistance)
	assert.Nil(t, failed.AvgSolveTime)
}
