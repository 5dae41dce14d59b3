package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vrpbench/internal/analysis"
	"vrpbench/internal/bench"
	"vrpbench/internal/model"
	"vrpbench/pkg/config"
)

func reportData() *Data {
	gap := 25.0
	zero := 0.0
	avg := 10.0
	return &Data{
		Title:       "Test Report",
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Summary: &bench.Summary{
			TotalResults:       3,
			SuccessfulResults:  2,
			OverallSuccessRate: 2.0 / 3.0,
			UniqueInstances:    1,
			UniqueSolvers:      2,
			Solvers: map[string]*bench.SolverSummary{
				"greedy": {Runs: 2, Successful: 2, SuccessRate: 1,
					AvgDistance: &avg, BestDistance: &avg, WorstDistance: &avg, AvgSolveTime: &zero,
					MinSolveTime: &zero, MaxSolveTime: &zero},
				"broken": {Runs: 1},
			},
		},
		Comparisons: []*analysis.Comparison{
			{
				InstanceName: "a",
				NumSolvers:   2,
				NumValid:     2,
				BestSolver:   "exact",
				BestDistance: 8,
				Entries: []analysis.ComparisonEntry{
					{SolverName: "exact", Status: model.StatusOptimal, TotalDistance: 8, Valid: true, GapPercent: &zero},
					{SolverName: "greedy", Status: model.StatusFeasible, TotalDistance: 10, Valid: true, GapPercent: &gap},
				},
			},
		},
		Results: []*model.VRPSolution{
			{SolverName: "greedy", InstanceName: "a", TotalDistance: 10, Status: model.StatusFeasible,
				Routes: []model.Route{{VehicleID: 1, Locations: []int{0, 1, 0}, TotalDistance: 10, TotalDemand: 5}}},
			model.NewErrorSolution("broken", "a", 0.1),
		},
	}
}

func TestNewFromConfig(t *testing.T) {
	g, err := New(&config.ReportConfig{Format: "csv", FloatPrecision: 2})
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, g.Format())

	g, err = New(&config.ReportConfig{Format: "markdown", FloatPrecision: 2})
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, g.Format())

	g, err = New(&config.ReportConfig{Format: "xlsx", FloatPrecision: 2})
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, g.Format())

	_, err = New(&config.ReportConfig{Format: "pdf"})
	assert.Error(t, err)
}

func TestCSVGenerator(t *testing.T) {
	g := NewCSVGenerator(2)
	out, err := g.Generate(reportData())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Test Report")
	assert.Contains(t, text, "Total Results,3")
	assert.Contains(t, text, "Comparison: a")
	assert.Contains(t, text, "exact,OPTIMAL,8.00")
	assert.Contains(t, text, "greedy,FEASIBLE,10.00")
	// Зависший solver попадает в сводку без агрегатов
	assert.Contains(t, text, "broken,1,0,0.00%")
}

func TestMarkdownGenerator(t *testing.T) {
	g := NewMarkdownGenerator(2)
	out, err := g.Generate(reportData())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "# Test Report"))
	assert.Contains(t, text, "Generated: 2025-06-01 12:00:00")
	assert.Contains(t, text, "| greedy | 2 | 2 |")
	assert.Contains(t, text, "Best: **exact** (8.00)")
	assert.Contains(t, text, "broken: ERROR (time: 0.100s)")
}

func TestMarkdownAllFailed(t *testing.T) {
	g := NewMarkdownGenerator(2)
	out, err := g.Generate(&Data{
		Comparisons: []*analysis.Comparison{{InstanceName: "a", AllFailed: true}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "All solvers failed")
}

func TestExcelGenerator(t *testing.T) {
	g := NewExcelGenerator(2, true)
	out, err := g.Generate(reportData())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Comparison")
	assert.Contains(t, sheets, "Routes")

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Test Report", title)
}

func TestFormatSolutionSummary(t *testing.T) {
	assert.Empty(t, FormatSolutionSummary(nil))

	sol := &model.VRPSolution{SolverName: "greedy", TotalDistance: 12.5,
		Routes: []model.Route{{}, {}}, SolveTime: 0.25, Status: model.StatusFeasible}
	assert.Equal(t, "greedy: 12.50 (2 routes, 0.250s)", FormatSolutionSummary(sol))

	assert.Equal(t, "broken: ERROR (time: 0.100s)", FormatSolutionSummary(model.NewErrorSolution("broken", "a", 0.1)))
}
