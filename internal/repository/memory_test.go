package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpbench/internal/model"
)

func storedSolution(solverName, instanceName string, distance float64) *model.VRPSolution {
	return &model.VRPSolution{
		SolverName:     solverName,
		InstanceName:   instanceName,
		Routes:         []model.Route{{VehicleID: 1, Locations: []int{0, 1, 0}, TotalDistance: distance}},
		TotalDistance:  distance,
		SolveTime:      0.5,
		Status:         model.StatusFeasible,
		ObjectiveValue: distance,
	}
}

func TestMemoryRepositorySaveGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()

	id, err := repo.Save(ctx, storedSolution("greedy", "a", 10))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "greedy", rec.SolverName)
	assert.Equal(t, "a", rec.InstanceName)
	assert.Equal(t, 1, rec.NumRoutes)
	assert.False(t, rec.CreatedAt.IsZero())

	sol, err := rec.ToSolution()
	require.NoError(t, err)
	assert.Equal(t, 10.0, sol.TotalDistance)
	assert.Len(t, sol.Routes, 1)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestMemoryRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()

	_, err := repo.Save(ctx, storedSolution("greedy", "a", 10))
	require.NoError(t, err)
	_, err = repo.Save(ctx, storedSolution("exact", "a", 8))
	require.NoError(t, err)
	_, err = repo.Save(ctx, storedSolution("greedy", "b", 20))
	require.NoError(t, err)

	all, total, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].InstanceName, "newest first")

	greedy, total, err := repo.List(ctx, &ListOptions{Filter: &ListFilter{SolverName: "greedy"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, greedy, 2)

	page, total, err := repo.List(ctx, &ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "exact", page[0].SolverName)
}

func TestMemoryRepositoryDeleteClear(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResultRepository()

	id, err := repo.Save(ctx, storedSolution("greedy", "a", 10))
	require.NoError(t, err)
	_, err = repo.Save(ctx, storedSolution("exact", "a", 8))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), ErrResultNotFound)

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, total, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRecordRoundTripSentinel(t *testing.T) {
	sol := model.NewErrorSolution("broken", "a", 0.1)
	rec, err := NewRecord(sol)
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, rec.Status)
	assert.Zero(t, rec.NumRoutes)

	back, err := rec.ToSolution()
	require.NoError(t, err)
	assert.True(t, back.IsError())
}
