package analysis

import (
	"math"
	"sort"

	"vrpbench/internal/model"
)

// ComparisonEntry is one solver's line in a head-to-head comparison.
// GapPercent is only set when more than one solver produced a valid
// solution; for the best solver it is 0.
type ComparisonEntry struct {
	SolverName    string   `json:"solver_name"`
	Status        string   `json:"status"`
	TotalDistance float64  `json:"total_distance"`
	SolveTime     float64  `json:"solve_time"`
	NumRoutes     int      `json:"num_routes"`
	VehiclesUsed  int      `json:"vehicles_used"`
	Valid         bool     `json:"valid"`
	GapPercent    *float64 `json:"gap_percent,omitempty"`
}

// Comparison is the result of comparing several solvers' solutions to the
// same instance. When every solution is a failure sentinel, AllFailed is set
// and BestSolver is empty.
type Comparison struct {
	InstanceName  string            `json:"instance_name"`
	NumSolvers    int               `json:"num_solvers"`
	NumValid      int               `json:"num_valid"`
	NumFailed     int               `json:"num_failed"`
	AllFailed     bool              `json:"all_failed"`
	BestSolver    string            `json:"best_solver,omitempty"`
	BestDistance  float64           `json:"best_distance,omitempty"`
	WorstDistance float64           `json:"worst_distance,omitempty"`
	AvgDistance   float64           `json:"avg_distance,omitempty"`
	StdDistance   float64           `json:"std_distance,omitempty"`
	Entries       []ComparisonEntry `json:"entries"`
}

// CompareSolutions ranks solutions to one instance by total distance.
// Failure sentinels participate as invalid entries but never win. Ties on
// distance break lexicographically by solver name, so the result is
// deterministic regardless of map iteration order.
func CompareSolutions(solutions map[string]*model.VRPSolution) *Comparison {
	names := make([]string, 0, len(solutions))
	for name := range solutions {
		names = append(names, name)
	}
	sort.Strings(names)

	cmp := &Comparison{
		NumSolvers: len(names),
		Entries:    make([]ComparisonEntry, 0, len(names)),
	}

	bestDistance := math.Inf(1)
	bestSolver := ""
	validDistances := make([]float64, 0, len(names))
	for _, name := range names {
		sol := solutions[name]
		if sol == nil {
			continue
		}
		if cmp.InstanceName == "" {
			cmp.InstanceName = sol.InstanceName
		}

		valid := !sol.IsError() && !math.IsInf(sol.TotalDistance, 0)
		entry := ComparisonEntry{
			SolverName:    name,
			Status:        sol.Status,
			TotalDistance: sol.TotalDistance,
			SolveTime:     sol.SolveTime,
			NumRoutes:     len(sol.Routes),
			VehiclesUsed:  sol.NumVehiclesUsed(),
			Valid:         valid,
		}
		cmp.Entries = append(cmp.Entries, entry)

		if valid {
			cmp.NumValid++
			validDistances = append(validDistances, sol.TotalDistance)
			// Strict less keeps the lexicographically first name on ties.
			if sol.TotalDistance < bestDistance {
				bestDistance = sol.TotalDistance
				bestSolver = name
			}
		}
	}
	cmp.NumFailed = len(cmp.Entries) - cmp.NumValid

	if cmp.NumValid == 0 {
		cmp.AllFailed = true
		return cmp
	}

	cmp.BestSolver = bestSolver
	cmp.BestDistance = bestDistance

	stats := CalculateStatistics(validDistances)
	cmp.WorstDistance = stats.Max
	cmp.AvgDistance = stats.Mean
	cmp.StdDistance = stats.Std

	// Gaps are only meaningful with something to compare against.
	if cmp.NumValid > 1 {
		for i := range cmp.Entries {
			e := &cmp.Entries[i]
			if !e.Valid {
				continue
			}
			gap := 0.0
			if bestDistance > 0 {
				gap = (e.TotalDistance - bestDistance) / bestDistance * 100
			}
			e.GapPercent = &gap
		}
	}
	return cmp
}
