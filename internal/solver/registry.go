package solver

import (
	"sort"
	"strings"
	"sync"

	"vrpbench/pkg/apperror"
)

// Registry is a thread-safe, name-keyed collection of solver adapters.
// Names are unique: Register rejects duplicates, Replace overwrites.
type Registry struct {
	mu      sync.RWMutex
	solvers map[string]Solver
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{solvers: make(map[string]Solver)}
}

// DefaultRegistry is the process-wide registry used by harnesses that are
// not given their own. Adapters typically register themselves here from
// their package init.
var DefaultRegistry = NewRegistry()

// Register adds a solver under its own name. Registering an already taken
// name or a solver that reports itself unavailable is an error.
func (r *Registry) Register(s Solver) error {
	if s == nil {
		return apperror.New(apperror.CodeNilInput, "cannot register nil solver")
	}
	name := s.Name()
	if name == "" {
		return apperror.New(apperror.CodeInvalidArgument, "cannot register solver with empty name")
	}
	if !s.Available() {
		return apperror.Newf(apperror.CodeSolverUnavailable, "solver %q reports itself unavailable", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.solvers[name]; exists {
		return apperror.Newf(apperror.CodeInvalidArgument, "solver %q is already registered", name)
	}
	r.solvers[name] = s
	return nil
}

// Replace adds a solver, overwriting any previous registration of the name.
// Like Register it refuses a solver that reports itself unavailable.
func (r *Registry) Replace(s Solver) error {
	if s == nil {
		return apperror.New(apperror.CodeNilInput, "cannot register nil solver")
	}
	if s.Name() == "" {
		return apperror.New(apperror.CodeInvalidArgument, "cannot register solver with empty name")
	}
	if !s.Available() {
		return apperror.Newf(apperror.CodeSolverUnavailable, "solver %q reports itself unavailable", s.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.solvers[s.Name()] = s
	return nil
}

// Unregister removes a solver by name and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.solvers[name]; !ok {
		return false
	}
	delete(r.solvers, name)
	return true
}

// Get returns the solver registered under name.
func (r *Registry) Get(name string) (Solver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.solvers[name]
	if !ok {
		return nil, apperror.Newf(apperror.CodeSolverNotFound, "solver %q is not registered", name)
	}
	return s, nil
}

// Names returns the registered solver names in lexicographic order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Available returns the names of solvers whose underlying engine currently
// reports itself usable, in lexicographic order.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.solvers))
	for name, s := range r.solvers {
		if s.Available() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ByCategory returns the names of solvers whose metadata carries the given
// category, in lexicographic order.
func (r *Registry) ByCategory(cat Category) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.solvers))
	for name, s := range r.solvers {
		if s.Info().Category == cat {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ByProblemType returns the names of solvers supporting the given problem
// type tag (case-insensitive), in lexicographic order.
func (r *Registry) ByProblemType(problemType string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.solvers))
	for name, s := range r.solvers {
		if supportsType(s, problemType) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered solvers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.solvers)
}

func supportsType(s Solver, problemType string) bool {
	if b, ok := s.(interface{ SupportsProblemType(string) bool }); ok {
		return b.SupportsProblemType(problemType)
	}
	for _, p := range s.SupportedProblemTypes() {
		if strings.EqualFold(p, problemType) {
			return true
		}
	}
	return false
}

// Register adds a solver to DefaultRegistry.
func Register(s Solver) error { return DefaultRegistry.Register(s) }

// Get looks a solver up in DefaultRegistry.
func Get(name string) (Solver, error) { return DefaultRegistry.Get(name) }
