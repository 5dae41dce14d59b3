// Package solver defines the capability contract every VRP engine adapter
// implements, plus the registry that makes engines discoverable by name.
//
// The package does not contain optimization algorithms. Adapters wrap
// external engines (or test doubles) behind the Solver interface so the
// benchmarking harness can drive any of them uniformly.
package solver

import (
	"context"
	"strings"
	"time"

	"vrpbench/internal/model"
	"vrpbench/pkg/apperror"
	"vrpbench/pkg/logger"
)

// ============================================================================
// CATEGORIES
// ============================================================================

// Category is descriptive metadata about the kind of engine behind an
// adapter. It carries no behavioral contract: the harness treats every
// category identically.
type Category string

const (
	CategoryExact         Category = "exact"
	CategoryHeuristic     Category = "heuristic"
	CategoryMetaheuristic Category = "metaheuristic"
)

// ============================================================================
// CONTRACT
// ============================================================================

// Options carries engine-specific tuning parameters. Keys an adapter does
// not recognize are ignored.
type Options map[string]any

// Info is static metadata an adapter reports about itself. The optimality
// and randomization flags follow from the category: only exact engines
// guarantee the optimum, only metaheuristics search stochastically.
type Info struct {
	Name              string   `json:"name"`
	Category          Category `json:"category"`
	Description       string   `json:"description,omitempty"`
	ProblemTypes      []string `json:"problem_types"`
	GuaranteesOptimal bool     `json:"guarantees_optimal"`
	UsesRandomization bool     `json:"uses_randomization"`
}

// Solver is the contract every engine adapter implements.
//
// Solve must return the failure sentinel (model.NewErrorSolution) together
// with a nil error when the underlying engine fails; a non-nil error is
// reserved for misuse of the adapter itself. timeLimit bounds the engine's
// search; zero means the adapter's default.
type Solver interface {
	Solve(ctx context.Context, inst *model.VRPInstance, timeLimit time.Duration, opts Options) (*model.VRPSolution, error)

	// Name returns the unique registry name of the adapter.
	Name() string

	// Available reports whether the underlying engine can be used right
	// now. It is re-checked on every solve attempt, so the answer may
	// change over the lifetime of the process.
	Available() bool

	// SupportedProblemTypes lists the problem type tags the adapter
	// accepts, e.g. "CVRP" or "VRPTW".
	SupportedProblemTypes() []string

	// ValidateInstance performs the adapter's preflight check on an
	// instance before any engine work starts.
	ValidateInstance(inst *model.VRPInstance) error

	// Info returns the adapter's static metadata.
	Info() Info
}

// ============================================================================
// BASE ADAPTER
// ============================================================================

// Base carries the shared behavior of an adapter: name, category and the
// common preflight checks. Concrete adapters embed it and implement Solve
// and Available themselves.
type Base struct {
	name     string
	category Category
	desc     string
	problems []string
}

// NewBase creates the shared adapter core. With no problem types given the
// adapter defaults to CVRP only.
func NewBase(name string, category Category, description string, problemTypes ...string) Base {
	if len(problemTypes) == 0 {
		problemTypes = []string{model.ProblemCVRP}
	}
	return Base{
		name:     name,
		category: category,
		desc:     description,
		problems: problemTypes,
	}
}

func (b Base) Name() string       { return b.name }
func (b Base) Category() Category { return b.category }

func (b Base) SupportedProblemTypes() []string {
	out := make([]string, len(b.problems))
	copy(out, b.problems)
	return out
}

// SupportsProblemType reports whether the adapter accepts the given problem
// type tag, comparing case-insensitively.
func (b Base) SupportsProblemType(problemType string) bool {
	for _, p := range b.problems {
		if strings.EqualFold(p, problemType) {
			return true
		}
	}
	return false
}

func (b Base) Info() Info {
	return Info{
		Name:              b.name,
		Category:          b.category,
		Description:       b.desc,
		ProblemTypes:      b.SupportedProblemTypes(),
		GuaranteesOptimal: b.category == CategoryExact,
		UsesRandomization: b.category == CategoryMetaheuristic,
	}
}

// ValidateInstance runs the preflight checks shared by all adapters: a
// non-nil instance with locations and vehicles, a depot, a matching distance
// matrix and enough fleet capacity for the total demand.
func (b Base) ValidateInstance(inst *model.VRPInstance) error {
	if inst == nil {
		return apperror.ErrNilInstance
	}
	if len(inst.Locations) == 0 {
		return apperror.ErrEmptyInstance
	}
	if len(inst.Vehicles) == 0 {
		return apperror.ErrNoVehicles
	}
	if !inst.HasDepot() {
		return apperror.New(apperror.CodePreflightFailed, "instance has no depot location")
	}
	if len(inst.DistanceMatrix) != len(inst.Locations) {
		return apperror.Newf(apperror.CodeMatrixSizeMismatch,
			"distance matrix size %d does not match number of locations %d",
			len(inst.DistanceMatrix), len(inst.Locations))
	}
	if demand, capacity := inst.TotalDemand(), inst.FleetCapacity(); demand > capacity {
		return apperror.Newf(apperror.CodePreflightFailed,
			"total demand %d exceeds total fleet capacity %d", demand, capacity)
	}
	return nil
}

// CreateErrorSolution builds the failure sentinel carrying this adapter's
// name and logs message, the engine's account of what went wrong. elapsed is
// the wall-clock seconds spent before the failure.
func (b Base) CreateErrorSolution(instanceName, message string, elapsed float64) *model.VRPSolution {
	logger.Error("creating error solution",
		"solver", b.name,
		"instance", instanceName,
		"message", message)
	return model.NewErrorSolution(b.name, instanceName, elapsed)
}
