package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpbench/pkg/config"
)

func TestFromConfigMemoryCache(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Driver = "memory"
	cfg.Cache.DefaultTTL = time.Minute

	h, cleanup, err := FromConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, h.resultCache)
	assert.Nil(t, h.repo)
	assert.Nil(t, h.metrics)
}

func TestFromConfigPlain(t *testing.T) {
	h, cleanup, err := FromConfig(context.Background(), &config.Config{})
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, h.resultCache)
}

func TestRunConfigured(t *testing.T) {
	h := newHarness(t, newStub("greedy", 10))
	require.NoError(t, h.LoadInstance(benchInstance(t, "a")))

	out, err := h.RunConfigured(context.Background(), &config.BenchmarkConfig{
		DefaultTimeLimit: time.Second,
		Solvers:          []string{"greedy"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.False(t, out["a"]["greedy"].IsError())
}
