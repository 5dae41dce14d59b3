// Package bench runs solver engines against VRP instances and accumulates
// their solutions for comparison, export and reporting.
//
// The harness never lets one engine's failure abort a multi-solver run: a
// solver that returns an error, panics, fails its preflight check or reports
// itself unavailable contributes a failure sentinel (model.NewErrorSolution)
// to the result log instead. Only configuration mistakes, such as an unknown
// instance name or an empty sweep, surface as Go errors.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"vrpbench/internal/model"
	"vrpbench/internal/repository"
	"vrpbench/internal/solver"
	"vrpbench/pkg/apperror"
	"vrpbench/pkg/cache"
	"vrpbench/pkg/logger"
	"vrpbench/pkg/metrics"
	"vrpbench/pkg/telemetry"
)

// ============================================================================
// HARNESS
// ============================================================================

// Harness owns the instance catalog and the append-only result log. Loading
// an instance under an existing name replaces it; results are never replaced,
// only appended or cleared.
type Harness struct {
	registry    *solver.Registry
	log         *slog.Logger
	resultCache *cache.SolutionCache
	metrics     *metrics.Metrics
	repo        repository.ResultRepository

	// Hard upper bound on one engine call, enforced through the context.
	// Zero means no bound beyond the advisory time limit.
	solveTimeout time.Duration

	mu        sync.Mutex
	instances map[string]*model.VRPInstance
	results   []*model.VRPSolution
}

// Option configures a Harness.
type Option func(*Harness)

// WithRegistry makes the harness resolve solvers from reg instead of the
// process-wide default registry.
func WithRegistry(reg *solver.Registry) Option {
	return func(h *Harness) { h.registry = reg }
}

// WithLogger overrides the harness logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Harness) { h.log = log }
}

// WithResultCache enables solution caching: Solve consults the cache before
// dispatching to an engine and stores successful solutions after.
func WithResultCache(sc *cache.SolutionCache) Option {
	return func(h *Harness) { h.resultCache = sc }
}

// WithMetrics enables Prometheus instrumentation of solve calls.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Harness) { h.metrics = m }
}

// WithRepository persists every appended solution to the given store. A
// persistence failure is logged and never fails the solve that produced it.
func WithRepository(repo repository.ResultRepository) Option {
	return func(h *Harness) { h.repo = repo }
}

// WithSolveTimeout caps one engine call via context cancellation. The
// advisory time limit stays a hint to the engine; this is the hard cutoff
// for engines that honor their context.
func WithSolveTimeout(d time.Duration) Option {
	return func(h *Harness) { h.solveTimeout = d }
}

// New creates a harness backed by solver.DefaultRegistry unless WithRegistry
// says otherwise.
func New(opts ...Option) *Harness {
	h := &Harness{
		registry:  solver.DefaultRegistry,
		log:       logger.WithComponent("bench"),
		instances: make(map[string]*model.VRPInstance),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ============================================================================
// INSTANCE CATALOG
// ============================================================================

// LoadInstance adds inst to the catalog, replacing any instance with the
// same name.
func (h *Harness) LoadInstance(inst *model.VRPInstance) error {
	if inst == nil {
		return apperror.ErrNilInstance
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances[inst.Name] = inst
	h.log.Debug("instance loaded",
		"instance", inst.Name,
		"customers", inst.NumCustomers(),
		"vehicles", len(inst.Vehicles))
	return nil
}

// LoadInstanceFromFile reads a JSON instance file and loads it. The decoded
// data goes through model.NewInstance so a malformed file is rejected with
// the same invariants as programmatic construction.
func (h *Harness) LoadInstanceFromFile(path string) (*model.VRPInstance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeIOError, "failed to read instance file")
	}

	var raw model.VRPInstance
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeBadFormat, "failed to parse instance file")
	}

	inst, err := model.NewInstance(raw.Name, raw.Locations, raw.Vehicles, raw.DistanceMatrix, raw.ProblemType)
	if err != nil {
		return nil, err
	}
	if err := h.LoadInstance(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// Instance returns the loaded instance with the given name.
func (h *Harness) Instance(name string) (*model.VRPInstance, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	inst, ok := h.instances[name]
	return inst, ok
}

// InstanceNames returns the catalog's instance names in sorted order.
func (h *Harness) InstanceNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.instances))
	for name := range h.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Results returns a copy of the accumulated result log.
func (h *Harness) Results() []*model.VRPSolution {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*model.VRPSolution, len(h.results))
	copy(out, h.results)
	return out
}

// ClearResults drops the accumulated result log.
func (h *Harness) ClearResults() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = nil
}

// ClearInstances drops the instance catalog.
func (h *Harness) ClearInstances() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances = make(map[string]*model.VRPInstance)
}

// ClearAll drops both the catalog and the result log.
func (h *Harness) ClearAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances = make(map[string]*model.VRPInstance)
	h.results = nil
}

// ============================================================================
// SOLVE
// ============================================================================

// Solve runs one solver against one loaded instance and appends the outcome
// to the result log. An unknown instance or solver name is a configuration
// error and returns a nil solution with a non-nil error; every engine-side
// failure instead yields the failure sentinel together with a nil error, so
// a benchmark sweep always gets a comparably shaped result back.
func (h *Harness) Solve(ctx context.Context, instanceName, solverName string, timeLimit time.Duration, opts solver.Options) (*model.VRPSolution, error) {
	inst, ok := h.Instance(instanceName)
	if !ok {
		return nil, apperror.Newf(apperror.CodeInstanceNotFound, "instance %q is not loaded", instanceName)
	}

	s, err := h.registry.Get(solverName)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "Harness.Solve")
	defer span.End()
	telemetry.SetAttributes(ctx, telemetry.InstanceAttributes(inst.Name, inst.ProblemType, inst.NumCustomers(), len(inst.Vehicles))...)

	log := h.log.With("solver", solverName, "instance", instanceName)

	if h.resultCache != nil {
		if sol, hit, cerr := h.resultCache.Get(ctx, inst, solverName, timeLimit, opts); cerr == nil && hit {
			log.Info("solution served from cache", "distance", sol.TotalDistance)
			if h.metrics != nil {
				h.metrics.RecordCacheLookup(true)
			}
			h.appendResult(ctx, sol)
			return sol, nil
		}
		if h.metrics != nil {
			h.metrics.RecordCacheLookup(false)
		}
	}

	if !s.Available() {
		log.Warn("solver is not available")
		return h.fail(ctx, solverName, instanceName, 0, "unavailable"), nil
	}

	if perr := s.ValidateInstance(inst); perr != nil {
		log.Warn("instance failed solver preflight", "error", perr)
		return h.fail(ctx, solverName, instanceName, 0, "preflight"), nil
	}

	start := time.Now()
	sol, serr := h.dispatch(ctx, s, inst, timeLimit, opts)
	elapsed := time.Since(start)

	if serr != nil || sol == nil {
		if serr != nil {
			log.Error("solver failed", "error", serr, "elapsed", elapsed)
			telemetry.SetError(ctx, serr)
		} else {
			log.Error("solver returned no solution", "elapsed", elapsed)
		}
		if h.metrics != nil {
			h.metrics.RecordSolve(solverName, false, elapsed)
		}
		return h.fail(ctx, solverName, instanceName, elapsed.Seconds(), "engine"), nil
	}

	if sol.SolveTime == 0 {
		sol.SolveTime = elapsed.Seconds()
	}

	success := !sol.IsError()
	telemetry.SetAttributes(ctx, telemetry.SolveAttributes(solverName, sol.Status, sol.TotalDistance, len(sol.Routes))...)
	if h.metrics != nil {
		h.metrics.RecordSolve(solverName, success, elapsed)
		if success {
			h.metrics.RecordSolution(solverName, instanceName, sol.TotalDistance)
		}
	}
	if success && h.resultCache != nil {
		if cerr := h.resultCache.Set(ctx, inst, timeLimit, opts, sol, 0); cerr != nil {
			log.Warn("failed to cache solution", "error", cerr)
		}
	}

	log.Info("solve finished",
		"status", sol.Status,
		"distance", sol.TotalDistance,
		"routes", len(sol.Routes),
		"elapsed", elapsed)

	h.appendResult(ctx, sol)
	return sol, nil
}

// dispatch calls the engine with panic isolation. A panicking plugin is
// reported as an ordinary engine failure.
func (h *Harness) dispatch(ctx context.Context, s solver.Solver, inst *model.VRPInstance, timeLimit time.Duration, opts solver.Options) (sol *model.VRPSolution, err error) {
	defer func() {
		if r := recover(); r != nil {
			sol = nil
			err = apperror.Newf(apperror.CodeSolverPanic, "solver %s panicked: %v", s.Name(), r)
		}
	}()
	if h.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solveTimeout)
		defer cancel()
	}
	return s.Solve(ctx, inst, timeLimit, opts)
}

// fail builds, records and returns the failure sentinel for one solve.
func (h *Harness) fail(ctx context.Context, solverName, instanceName string, elapsed float64, reason string) *model.VRPSolution {
	sol := model.NewErrorSolution(solverName, instanceName, elapsed)
	telemetry.AddEvent(ctx, "solve.failed")
	h.log.Warn("recorded failure sentinel",
		"solver", solverName,
		"instance", instanceName,
		"reason", reason)
	h.appendResult(ctx, sol)
	return sol
}

// appendResult adds sol to the result log and, when a repository is
// configured, persists it. Persistence errors are logged only.
func (h *Harness) appendResult(ctx context.Context, sol *model.VRPSolution) {
	h.mu.Lock()
	h.results = append(h.results, sol)
	h.mu.Unlock()

	if h.repo != nil {
		if _, err := h.repo.Save(ctx, sol); err != nil {
			h.log.Warn("failed to persist result",
				"solver", sol.SolverName,
				"instance", sol.InstanceName,
				"error", err)
		}
	}
}

// ============================================================================
// BENCHMARK SWEEPS
// ============================================================================

// Benchmark runs every named solver against one instance and returns exactly
// one solution per requested solver. An empty solver list means all solvers
// currently reporting themselves available. Failures of individual engines,
// including names missing from the registry, become sentinel entries; only an
// unknown instance or an empty resolved solver list fails the whole call.
func (h *Harness) Benchmark(ctx context.Context, instanceName string, solverNames []string, timeLimit time.Duration, opts solver.Options) (map[string]*model.VRPSolution, error) {
	if _, ok := h.Instance(instanceName); !ok {
		return nil, apperror.Newf(apperror.CodeInstanceNotFound, "instance %q is not loaded", instanceName)
	}

	if len(solverNames) == 0 {
		solverNames = h.registry.Available()
	}
	if len(solverNames) == 0 {
		return nil, apperror.ErrNoSolvers
	}

	ctx, span := telemetry.StartSpan(ctx, "Harness.Benchmark")
	defer span.End()

	h.log.Info("benchmark started", "instance", instanceName, "solvers", len(solverNames))

	out := make(map[string]*model.VRPSolution, len(solverNames))
	for _, name := range solverNames {
		sol, err := h.Solve(ctx, instanceName, name, timeLimit, opts)
		if err != nil {
			// An unresolvable solver still gets its sentinel entry so the
			// sweep keeps one result per requested name.
			sol = h.fail(ctx, name, instanceName, 0, "not registered")
		}
		out[name] = sol
	}
	return out, nil
}

// RunFullBenchmark sweeps the Cartesian product of instances and solvers.
// Empty lists default to everything loaded and everything available; an empty
// resolved list on either axis is a configuration error reported before any
// solve runs, as is an unknown instance name in an explicit list.
func (h *Harness) RunFullBenchmark(ctx context.Context, instanceNames, solverNames []string, timeLimit time.Duration) (map[string]map[string]*model.VRPSolution, error) {
	if len(instanceNames) == 0 {
		instanceNames = h.InstanceNames()
	}
	if len(instanceNames) == 0 {
		return nil, apperror.ErrNoInstances
	}
	for _, name := range instanceNames {
		if _, ok := h.Instance(name); !ok {
			return nil, apperror.Newf(apperror.CodeInstanceNotFound, "instance %q is not loaded", name)
		}
	}

	if len(solverNames) == 0 {
		solverNames = h.registry.Available()
	}
	if len(solverNames) == 0 {
		return nil, apperror.ErrNoSolvers
	}

	ctx, span := telemetry.StartSpan(ctx, "Harness.RunFullBenchmark")
	defer span.End()

	h.log.Info("full benchmark started",
		"instances", len(instanceNames),
		"solvers", len(solverNames))

	start := time.Now()
	if h.metrics != nil {
		h.metrics.BenchmarkRunsTotal.Inc()
	}

	out := make(map[string]map[string]*model.VRPSolution, len(instanceNames))
	for _, instName := range instanceNames {
		cell, err := h.Benchmark(ctx, instName, solverNames, timeLimit, nil)
		if err != nil {
			return nil, fmt.Errorf("benchmark of instance %q failed: %w", instName, err)
		}
		out[instName] = cell
	}

	h.log.Info("full benchmark finished",
		"instances", len(instanceNames),
		"solvers", len(solverNames),
		"elapsed", time.Since(start))
	return out, nil
}
