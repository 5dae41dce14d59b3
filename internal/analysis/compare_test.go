package analysis

import (
	"testing"

	"vrpbench/internal/model"
)

func solution(solver string, distance, solveTime float64) *model.VRPSolution {
	return &model.VRPSolution{
		SolverName:     solver,
		InstanceName:   "inst",
		Routes:         []model.Route{{VehicleID: 1, Locations: []int{0, 1, 0}}},
		TotalDistance:  distance,
		SolveTime:      solveTime,
		Status:         model.StatusFeasible,
		ObjectiveValue: distance,
	}
}

func entryByName(t *testing.T, cmp *Comparison, name string) ComparisonEntry {
	t.Helper()
	for _, e := range cmp.Entries {
		if e.SolverName == name {
			return e
		}
	}
	t.Fatalf("no entry for solver %q", name)
	return ComparisonEntry{}
}

func TestCompareSolutions(t *testing.T) {
	cmp := CompareSolutions(map[string]*model.VRPSolution{
		"fast":  solution("fast", 120, 0.1),
		"exact": solution("exact", 100, 5.0),
	})

	if cmp.AllFailed {
		t.Fatal("AllFailed set with valid solutions present")
	}
	if cmp.BestSolver != "exact" {
		t.Errorf("BestSolver = %q, want exact", cmp.BestSolver)
	}
	if !floatEquals(cmp.BestDistance, 100) {
		t.Errorf("BestDistance = %v, want 100", cmp.BestDistance)
	}
	if cmp.NumSolvers != 2 || cmp.NumValid != 2 {
		t.Errorf("NumSolvers/NumValid = %d/%d, want 2/2", cmp.NumSolvers, cmp.NumValid)
	}

	fast := entryByName(t, cmp, "fast")
	if fast.GapPercent == nil || !floatEquals(*fast.GapPercent, 20) {
		t.Errorf("fast gap = %v, want 20", fast.GapPercent)
	}
	exact := entryByName(t, cmp, "exact")
	if exact.GapPercent == nil || !floatEquals(*exact.GapPercent, 0) {
		t.Errorf("exact gap = %v, want 0", exact.GapPercent)
	}
}

func TestCompareSolutionsTieBreak(t *testing.T) {
	cmp := CompareSolutions(map[string]*model.VRPSolution{
		"zeta":  solution("zeta", 100, 0.1),
		"alpha": solution("alpha", 100, 0.2),
	})

	if cmp.BestSolver != "alpha" {
		t.Errorf("BestSolver = %q, want alpha (lexicographic tie-break)", cmp.BestSolver)
	}
}

func TestCompareSolutionsAllFailed(t *testing.T) {
	cmp := CompareSolutions(map[string]*model.VRPSolution{
		"a": model.NewErrorSolution("a", "inst", 0.1),
		"b": model.NewErrorSolution("b", "inst", 0.2),
	})

	if !cmp.AllFailed {
		t.Fatal("AllFailed not set when every solution is a sentinel")
	}
	if cmp.BestSolver != "" {
		t.Errorf("BestSolver = %q, want empty", cmp.BestSolver)
	}
	if cmp.NumValid != 0 || cmp.NumSolvers != 2 {
		t.Errorf("NumValid/NumSolvers = %d/%d, want 0/2", cmp.NumValid, cmp.NumSolvers)
	}
}

func TestCompareSolutionsSingleValidNoGaps(t *testing.T) {
	cmp := CompareSolutions(map[string]*model.VRPSolution{
		"ok":     solution("ok", 100, 0.1),
		"broken": model.NewErrorSolution("broken", "inst", 0.2),
	})

	if cmp.BestSolver != "ok" {
		t.Errorf("BestSolver = %q, want ok", cmp.BestSolver)
	}
	ok := entryByName(t, cmp, "ok")
	if ok.GapPercent != nil {
		t.Errorf("gap reported with a single valid solution: %v", *ok.GapPercent)
	}
	broken := entryByName(t, cmp, "broken")
	if broken.Valid {
		t.Error("sentinel entry marked valid")
	}
}

func TestCompareSolutionsEmpty(t *testing.T) {
	cmp := CompareSolutions(nil)

	if !cmp.AllFailed {
		t.Error("AllFailed not set for empty input")
	}
	if cmp.NumSolvers != 0 || len(cmp.Entries) != 0 {
		t.Errorf("unexpected entries for empty input: %+v", cmp.Entries)
	}
}
