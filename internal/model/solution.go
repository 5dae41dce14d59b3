package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"vrpbench/pkg/apperror"
)

// Solution status vocabulary. The set is open: solvers may report additional
// statuses, but StatusError is the only one with special meaning — it marks
// the sentinel failure solution that every downstream consumer must treat
// specially.
const (
	StatusOptimal  = "OPTIMAL"
	StatusFeasible = "FEASIBLE"
	StatusError    = "ERROR"
)

// VRPSolution is the output of one solve attempt: the routes plus solve
// metadata. A solution with StatusError carries infinite distance and
// objective and an empty route list — the uniform sentinel for "this solver
// failed on this instance".
//
// Solutions are created once (by a solver or by the harness on failure) and
// are immutable afterwards.
type VRPSolution struct {
	SolverName     string  `json:"solver_name"`
	InstanceName   string  `json:"instance_name"`
	Routes         []Route `json:"routes"`
	TotalDistance  float64 `json:"total_distance"`
	TotalTime      float64 `json:"total_time"`
	SolveTime      float64 `json:"solve_time"`
	Status         string  `json:"status"`
	ObjectiveValue float64 `json:"objective_value"`
}

// NewErrorSolution constructs the sentinel failure solution for a solver and
// instance pair: StatusError, infinite distance and objective, no routes.
// elapsed is the wall-clock seconds spent before the failure.
func NewErrorSolution(solverName, instanceName string, elapsed float64) *VRPSolution {
	if elapsed < 0 {
		elapsed = 0
	}
	return &VRPSolution{
		SolverName:     solverName,
		InstanceName:   instanceName,
		Routes:         []Route{},
		TotalDistance:  math.Inf(1),
		TotalTime:      0,
		SolveTime:      elapsed,
		Status:         StatusError,
		ObjectiveValue: math.Inf(1),
	}
}

// IsError reports whether the solution is the failure sentinel.
func (s *VRPSolution) IsError() bool {
	return s.Status == StatusError || math.IsInf(s.TotalDistance, 1)
}

// NumVehiclesUsed returns the number of routes that actually visit customers.
func (s *VRPSolution) NumVehiclesUsed() int {
	used := 0
	for _, r := range s.Routes {
		if len(r.CustomerSequence()) > 0 {
			used++
		}
	}
	return used
}

// Validate checks the solution's own format, independent of any instance:
// non-empty identifiers, non-negative totals and depot-bounded routes.
// Error sentinels are exempt from the distance check.
func (s *VRPSolution) Validate() *apperror.ValidationErrors {
	verr := apperror.NewValidationErrors()

	if s.SolverName == "" {
		verr.AddError(apperror.CodeInvalidArgument, "solver name cannot be empty")
	}
	if s.InstanceName == "" {
		verr.AddError(apperror.CodeInvalidArgument, "instance name cannot be empty")
	}
	if !s.IsError() && s.TotalDistance < 0 {
		verr.AddError(apperror.CodeNegativeDistance, "total distance cannot be negative")
	}
	if s.SolveTime < 0 {
		verr.AddError(apperror.CodeNegativeTime, "solve time cannot be negative")
	}
	for i, route := range s.Routes {
		if !route.IsValidRoute() {
			verr.AddError(apperror.CodeInvalidRoute,
				fmt.Sprintf("route %d does not start and end at depot", i+1))
		}
	}
	return verr
}

// Summary returns a one-line human-readable description of the solution.
func (s *VRPSolution) Summary() string {
	if s.IsError() {
		return fmt.Sprintf("%s: ERROR (time: %.3fs)", s.SolverName, s.SolveTime)
	}
	return fmt.Sprintf("%s: %.2f (%d routes, %.3fs)", s.SolverName, s.TotalDistance, len(s.Routes), s.SolveTime)
}

// infFloat is a float64 that survives JSON round-trips when infinite.
// encoding/json rejects bare IEEE infinities, so the sentinel distances of
// error solutions are encoded as the string "Infinity" (the literal Python's
// json module emits, which keeps exports from the original tooling readable).
type infFloat float64

func (f infFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	default:
		return json.Marshal(v)
	}
}

func (f *infFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch strings.ToLower(s) {
	case "infinity", "inf", "+inf":
		*f = infFloat(math.Inf(1))
		return nil
	case "-infinity", "-inf":
		*f = infFloat(math.Inf(-1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = infFloat(v)
	return nil
}

// solutionJSON mirrors VRPSolution with infinity-safe distance fields.
type solutionJSON struct {
	SolverName     string   `json:"solver_name"`
	InstanceName   string   `json:"instance_name"`
	Routes         []Route  `json:"routes"`
	TotalDistance  infFloat `json:"total_distance"`
	TotalTime      float64  `json:"total_time"`
	SolveTime      float64  `json:"solve_time"`
	Status         string   `json:"status"`
	ObjectiveValue infFloat `json:"objective_value"`
}

// MarshalJSON implements json.Marshaler, encoding infinite sentinel values
// as the string "Infinity".
func (s *VRPSolution) MarshalJSON() ([]byte, error) {
	routes := s.Routes
	if routes == nil {
		routes = []Route{}
	}
	return json.Marshal(solutionJSON{
		SolverName:     s.SolverName,
		InstanceName:   s.InstanceName,
		Routes:         routes,
		TotalDistance:  infFloat(s.TotalDistance),
		TotalTime:      s.TotalTime,
		SolveTime:      s.SolveTime,
		Status:         s.Status,
		ObjectiveValue: infFloat(s.ObjectiveValue),
	})
}

// UnmarshalJSON implements json.Unmarshaler, accepting both numeric values
// and the "Infinity" string form.
func (s *VRPSolution) UnmarshalJSON(data []byte) error {
	var sj solutionJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	s.SolverName = sj.SolverName
	s.InstanceName = sj.InstanceName
	s.Routes = sj.Routes
	s.TotalDistance = float64(sj.TotalDistance)
	s.TotalTime = sj.TotalTime
	s.SolveTime = sj.SolveTime
	s.Status = sj.Status
	s.ObjectiveValue = float64(sj.ObjectiveValue)
	return nil
}
