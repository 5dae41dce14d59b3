package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpbench/internal/model"
	"vrpbench/internal/solver"
)

func cacheInstance(t *testing.T, name string, x float64) *model.VRPInstance {
	t.Helper()
	locs := []model.Location{model.NewDepot(0, 0)}
	c, err := model.NewCustomer(1, x, 2, 3, 0)
	require.NoError(t, err)
	locs = append(locs, c)
	v, err := model.NewVehicle(1, 10)
	require.NoError(t, err)
	inst, err := model.NewInstance(name, locs, []model.Vehicle{v}, model.BuildDistanceMatrix(locs), "")
	require.NoError(t, err)
	return inst
}

func TestInstanceHash(t *testing.T) {
	a := cacheInstance(t, "a", 1)
	sameGeometry := cacheInstance(t, "renamed", 1)
	different := cacheInstance(t, "a", 2)

	assert.Equal(t, InstanceHash(a), InstanceHash(sameGeometry), "name must not affect the hash")
	assert.NotEqual(t, InstanceHash(a), InstanceHash(different))
	assert.Empty(t, InstanceHash(nil))
}

func TestOptionsHash(t *testing.T) {
	assert.Empty(t, OptionsHash(nil))
	assert.Empty(t, OptionsHash(solver.Options{}))

	h1 := OptionsHash(solver.Options{"seed": 42, "mode": "fast"})
	h2 := OptionsHash(solver.Options{"mode": "fast", "seed": 42})
	h3 := OptionsHash(solver.Options{"seed": 43, "mode": "fast"})
	assert.Equal(t, h1, h2, "key order must not affect the hash")
	assert.NotEqual(t, h1, h3)
}

func TestSolutionCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	sc := NewSolutionCache(newTestCache(t), time.Minute)
	inst := cacheInstance(t, "a", 1)

	sol := &model.VRPSolution{
		SolverName:    "greedy",
		InstanceName:  "a",
		Routes:        []model.Route{{VehicleID: 1, Locations: []int{0, 1, 0}, TotalDistance: 4}},
		TotalDistance: 4,
		Status:        model.StatusFeasible,
	}
	require.NoError(t, sc.Set(ctx, inst, time.Minute, nil, sol, 0))

	got, ok, err := sc.Get(ctx, inst, "greedy", time.Minute, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sol.TotalDistance, got.TotalDistance)
	assert.Equal(t, sol.SolverName, got.SolverName)

	_, ok, err = sc.Get(ctx, inst, "other", time.Minute, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolutionCacheSeparatesTimeLimits(t *testing.T) {
	ctx := context.Background()
	sc := NewSolutionCache(newTestCache(t), time.Minute)
	inst := cacheInstance(t, "a", 1)

	sol := &model.VRPSolution{SolverName: "greedy", InstanceName: "a", TotalDistance: 4, Status: model.StatusFeasible}
	require.NoError(t, sc.Set(ctx, inst, time.Second, nil, sol, 0))

	// A solution found under a one-second budget must not answer a
	// one-minute request.
	_, ok, err := sc.Get(ctx, inst, "greedy", time.Minute, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = sc.Get(ctx, inst, "greedy", time.Second, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSolutionCacheSkipsSentinels(t *testing.T) {
	ctx := context.Background()
	sc := NewSolutionCache(newTestCache(t), time.Minute)
	inst := cacheInstance(t, "a", 1)

	require.NoError(t, sc.Set(ctx, inst, time.Minute, nil, model.NewErrorSolution("broken", "a", 0), 0))

	_, ok, err := sc.Get(ctx, inst, "broken", time.Minute, nil)
	require.NoError(t, err)
	assert.False(t, ok, "error sentinels must not be cached")
}

func TestSolutionCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	sc := NewSolutionCache(newTestCache(t), time.Minute)
	a := cacheInstance(t, "a", 1)
	b := cacheInstance(t, "b", 2)

	sol := func(name string) *model.VRPSolution {
		return &model.VRPSolution{SolverName: "greedy", InstanceName: name, Status: model.StatusFeasible}
	}
	require.NoError(t, sc.Set(ctx, a, time.Minute, nil, sol("a"), 0))
	require.NoError(t, sc.Set(ctx, b, time.Minute, nil, sol("b"), 0))

	require.NoError(t, sc.Invalidate(ctx, a))

	_, okA, err := sc.Get(ctx, a, "greedy", time.Minute, nil)
	require.NoError(t, err)
	_, okB, err := sc.Get(ctx, b, "greedy", time.Minute, nil)
	require.NoError(t, err)
	assert.False(t, okA)
	assert.True(t, okB)

	n, err := sc.InvalidateAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
