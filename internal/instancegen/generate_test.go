package instancegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpbench/internal/model"
)

func TestSample(t *testing.T) {
	inst, err := Sample("sample", 10, 42, Params{})
	require.NoError(t, err)

	assert.Equal(t, "sample", inst.Name)
	assert.Equal(t, model.ProblemCVRP, inst.ProblemType)
	assert.Equal(t, 10, inst.NumCustomers())
	assert.Len(t, inst.Vehicles, 3)
	assert.True(t, inst.HasDepot())
	assert.Len(t, inst.DistanceMatrix, 11)

	for _, loc := range inst.Locations[1:] {
		assert.GreaterOrEqual(t, loc.X, 0.0)
		assert.LessOrEqual(t, loc.X, 100.0)
		assert.GreaterOrEqual(t, loc.Demand, 1)
		assert.LessOrEqual(t, loc.Demand, 20)
	}
}

func TestSampleReproducible(t *testing.T) {
	a, err := Sample("a", 10, 42, Params{})
	require.NoError(t, err)
	b, err := Sample("b", 10, 42, Params{})
	require.NoError(t, err)
	c, err := Sample("c", 10, 7, Params{})
	require.NoError(t, err)

	assert.Equal(t, a.Locations, b.Locations)
	assert.NotEqual(t, a.Locations, c.Locations)
}

func TestClustered(t *testing.T) {
	inst, err := Clustered("clustered", 20, 3, 42, Params{VehicleCapacity: 60})
	require.NoError(t, err)

	assert.Equal(t, 20, inst.NumCustomers())
	for _, loc := range inst.Locations {
		assert.GreaterOrEqual(t, loc.X, 0.0)
		assert.LessOrEqual(t, loc.X, 100.0)
		assert.GreaterOrEqual(t, loc.Y, 0.0)
		assert.LessOrEqual(t, loc.Y, 100.0)
	}

	_, err = Clustered("bad", 20, 0, 42, Params{})
	assert.Error(t, err)
}

func TestTimeWindows(t *testing.T) {
	inst, err := TimeWindows("vrptw", 15, 42, Params{})
	require.NoError(t, err)

	assert.Equal(t, model.ProblemVRPTW, inst.ProblemType)
	assert.Equal(t, 15, inst.NumCustomers())

	depot := inst.Locations[0]
	assert.Equal(t, 480, depot.TimeWindowStart)
	assert.Equal(t, 1080, depot.TimeWindowEnd)

	for _, loc := range inst.Locations[1:] {
		assert.GreaterOrEqual(t, loc.TimeWindowStart, 480)
		assert.Equal(t, loc.TimeWindowStart+60, loc.TimeWindowEnd)
		assert.LessOrEqual(t, loc.TimeWindowEnd+loc.ServiceTime, 1080)
	}
}
