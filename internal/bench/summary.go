package bench

import (
	"vrpbench/internal/analysis"
)

// SolverSummary aggregates one solver's runs across the result log. Distance
// and time aggregates cover successful runs only and are omitted entirely for
// a solver that never succeeded.
type SolverSummary struct {
	Runs          int      `json:"runs"`
	Successful    int      `json:"successful"`
	SuccessRate   float64  `json:"success_rate"`
	AvgDistance   *float64 `json:"avg_distance,omitempty"`
	BestDistance  *float64 `json:"best_distance,omitempty"`
	WorstDistance *float64 `json:"worst_distance,omitempty"`
	AvgSolveTime  *float64 `json:"avg_solve_time,omitempty"`
	MinSolveTime  *float64 `json:"min_solve_time,omitempty"`
	MaxSolveTime  *float64 `json:"max_solve_time,omitempty"`
}

// Summary is the per-solver rollup of the whole result log.
type Summary struct {
	TotalResults       int                       `json:"total_results"`
	SuccessfulResults  int                       `json:"successful_results,omitempty"`
	OverallSuccessRate float64                   `json:"overall_success_rate,omitempty"`
	UniqueInstances    int                       `json:"unique_instances,omitempty"`
	UniqueSolvers      int                       `json:"unique_solvers,omitempty"`
	Solvers            map[string]*SolverSummary `json:"solvers,omitempty"`
}

// ResultsSummary aggregates the result log per solver name. An empty log
// yields a summary with TotalResults of zero and nothing else.
func (h *Harness) ResultsSummary() *Summary {
	results := h.Results()

	summary := &Summary{TotalResults: len(results)}
	if len(results) == 0 {
		return summary
	}

	instances := make(map[string]struct{})
	distances := make(map[string][]float64)
	times := make(map[string][]float64)
	runs := make(map[string]int)

	for _, sol := range results {
		instances[sol.InstanceName] = struct{}{}
		runs[sol.SolverName]++
		if sol.IsError() {
			continue
		}
		summary.SuccessfulResults++
		distances[sol.SolverName] = append(distances[sol.SolverName], sol.TotalDistance)
		times[sol.SolverName] = append(times[sol.SolverName], sol.SolveTime)
	}

	summary.OverallSuccessRate = float64(summary.SuccessfulResults) / float64(len(results))
	summary.UniqueInstances = len(instances)
	summary.UniqueSolvers = len(runs)
	summary.Solvers = make(map[string]*SolverSummary, len(runs))

	for name, total := range runs {
		ss := &SolverSummary{
			Runs:       total,
			Successful: len(distances[name]),
		}
		if total > 0 {
			ss.SuccessRate = float64(ss.Successful) / float64(total)
		}
		if ss.Successful > 0 {
			dist := analysis.CalculateStatistics(distances[name])
			tm := analysis.CalculateStatistics(times[name])
			ss.AvgDistance = ptr(dist.Mean)
			ss.BestDistance = ptr(dist.Min)
			ss.WorstDistance = ptr(dist.Max)
			ss.AvgSolveTime = ptr(tm.Mean)
			ss.MinSolveTime = ptr(tm.Min)
			ss.MaxSolveTime = ptr(tm.Max)
		}
		summary.Solvers[name] = ss
	}
	return summary
}

func ptr(v float64) *float64 { return &v }
