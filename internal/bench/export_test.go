package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpbench/internal/model"
	"vrpbench/internal/solver"
)

func TestExportImportRoundTrip(t *testing.T) {
	crasher := newStub("crasher", 0)
	crasher.panics = true
	h := newHarness(t, newStub("greedy", 10), crasher)
	require.NoError(t, h.LoadInstance(benchInstance(t, "a")))
	ctx := context.Background()

	_, err := h.Benchmark(ctx, "a", []string{"greedy", "crasher"}, 0, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, h.ExportResults(path, true))

	// A fresh harness starts empty and absorbs the export.
	fresh := New(WithRegistry(solver.NewRegistry()))
	n, err := fresh.ImportResults(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want := h.Results()
	got := fresh.Results()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].SolverName, got[i].SolverName)
		assert.Equal(t, want[i].InstanceName, got[i].InstanceName)
		assert.Equal(t, want[i].TotalDistance, got[i].TotalDistance)
		assert.Equal(t, want[i].Status, got[i].Status)
	}

	inst, ok := fresh.Instance("a")
	require.True(t, ok)
	orig, _ := h.Instance("a")
	assert.Equal(t, orig.Locations, inst.Locations)
	assert.Equal(t, orig.Vehicles, inst.Vehicles)
	assert.Equal(t, orig.DistanceMatrix, inst.DistanceMatrix)
	assert.Equal(t, orig.ProblemType, inst.ProblemType)
}

func TestExportWithoutInstances(t *testing.T) {
	h := newHarness(t, newStub("greedy", 10))
	require.NoError(t, h.LoadInstance(benchInstance(t, "a")))
	_, err := h.Solve(context.Background(), "a", "greedy", 0, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, h.ExportResults(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"instances"`)
	assert.Contains(t, string(data), `"export_time"`)
}

func TestImportAppends(t *testing.T) {
	h := newHarness(t, newStub("greedy", 10))
	require.NoError(t, h.LoadInstance(benchInstance(t, "a")))
	_, err := h.Solve(context.Background(), "a", "greedy", 0, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, h.ExportResults(path, false))

	// Importing into the same harness doubles the log.
	_, err = h.ImportResults(path)
	require.NoError(t, err)
	assert.Len(t, h.Results(), 2)
}

func TestExportCSV(t *testing.T) {
	h := newHarness(t, newStub("greedy", 10))
	require.NoError(t, h.LoadInstance(benchInstance(t, "a")))
	_, err := h.Solve(context.Background(), "a", "greedy", 0, nil)
	require.NoError(t, err)
	h.appendResult(context.Background(), model.NewErrorSolution("broken", "a", 0))

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, h.ExportCSV(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t,
		[]string{"solver_name", "instance_name", "total_distance", "num_routes", "solve_time", "status", "objective_value"},
		rows[0])
	assert.Equal(t, "greedy", rows[1][0])
	assert.Equal(t, "10", rows[1][2])
	assert.Equal(t, model.StatusError, rows[2][5])
	assert.True(t, strings.Contains(rows[2][2], "Inf"))
}
