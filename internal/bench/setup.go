package bench

import (
	"context"
	"fmt"

	"vrpbench/internal/model"
	"vrpbench/internal/repository"
	"vrpbench/migrations"
	"vrpbench/pkg/cache"
	"vrpbench/pkg/config"
	"vrpbench/pkg/database"
	"vrpbench/pkg/metrics"
)

// FromConfig assembles a harness and its backing services from the loaded
// configuration: a solution cache when caching is enabled, and a Postgres
// result store with migrations applied when result history is on. The
// returned cleanup releases whatever was opened and is safe to call even
// after a partial failure.
func FromConfig(ctx context.Context, cfg *config.Config, extra ...Option) (*Harness, func(), error) {
	var opts []Option
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create solution cache: %w", err)
		}
		closers = append(closers, func() { _ = c.Close() })
		opts = append(opts, WithResultCache(cache.NewSolutionCache(c, cfg.Cache.DefaultTTL)))
	}

	if cfg.Benchmark.SaveHistory {
		db, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to result store: %w", err)
		}
		closers = append(closers, db.Close)

		if err := database.RunMigrations(ctx, db.Pool(), &cfg.Database, migrations.PostgresMigrations, migrations.PostgresDir); err != nil {
			return nil, cleanup, fmt.Errorf("failed to run migrations: %w", err)
		}
		opts = append(opts, WithRepository(repository.NewPostgresResultRepository(db)))
	}

	if cfg.Metrics.Enabled {
		opts = append(opts, WithMetrics(metrics.Get()))
	}
	if cfg.Benchmark.SolveTimeout > 0 {
		opts = append(opts, WithSolveTimeout(cfg.Benchmark.SolveTimeout))
	}

	opts = append(opts, extra...)
	return New(opts...), cleanup, nil
}

// RunConfigured sweeps the instance and solver lists named by the benchmark
// configuration with its default time limit. Empty lists keep their usual
// meaning of everything loaded and everything available.
func (h *Harness) RunConfigured(ctx context.Context, bcfg *config.BenchmarkConfig) (map[string]map[string]*model.VRPSolution, error) {
	return h.RunFullBenchmark(ctx, bcfg.Instances, bcfg.Solvers, bcfg.DefaultTimeLimit)
}
