package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/urfave/cli"

	"vrpbench/internal/analysis"
	"vrpbench/internal/bench"
	"vrpbench/internal/instancegen"
	"vrpbench/internal/model"
	"vrpbench/internal/report"
	"vrpbench/internal/solver"
	"vrpbench/pkg/config"
	"vrpbench/pkg/logger"
	"vrpbench/pkg/metrics"
	"vrpbench/pkg/telemetry"
)

var cfg *config.Config

func main() {
	app := cli.NewApp()
	app.Name = "vrpbench"
	app.Usage = "VRP solver benchmark toolkit: inspect, compare and validate benchmark results"
	app.Version = "1.0.0"

	app.Before = func(c *cli.Context) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.InitWithConfig(logger.Config{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			Output:     cfg.Log.Output,
			FilePath:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})

		if cfg.Tracing.Enabled {
			_, err := telemetry.Init(context.Background(), telemetry.Config{
				Enabled:     cfg.Tracing.Enabled,
				Endpoint:    cfg.Tracing.Endpoint,
				ServiceName: cfg.App.Name,
				Version:     cfg.App.Version,
				Environment: cfg.App.Environment,
				SampleRate:  cfg.Tracing.SampleRate,
			})
			if err != nil {
				logger.Log.Warn("Failed to init telemetry", "error", err)
			} else {
				logger.Log.Info("Telemetry initialized", "endpoint", cfg.Tracing.Endpoint)
			}
		}

		if cfg.Metrics.Enabled {
			metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		}
		return nil
	}

	app.Commands = []cli.Command{
		summaryCommand(),
		csvCommand(),
		compareCommand(),
		validateCommand(),
		generateCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadResults поднимает экспортированные результаты в свежий harness
func loadResults(path string) (*bench.Harness, error) {
	h := bench.New(bench.WithRegistry(solver.NewRegistry()))
	n, err := h.ImportResults(path)
	if err != nil {
		return nil, err
	}
	logger.Info("results loaded", "path", path, "count", n)
	return h, nil
}

func summaryCommand() cli.Command {
	return cli.Command{
		Name:      "summary",
		Usage:     "print the per-solver summary of an exported results file",
		ArgsUsage: "<results.json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("expected exactly one results file", 1)
			}
			h, err := loadResults(c.Args().First())
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(h.ResultsSummary(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func csvCommand() cli.Command {
	return cli.Command{
		Name:      "csv",
		Usage:     "convert an exported results file to CSV",
		ArgsUsage: "<results.json>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "out, o", Usage: "output file (default: results file with .csv extension)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("expected exactly one results file", 1)
			}
			in := c.Args().First()
			h, err := loadResults(in)
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				out = in[:len(in)-len(filepath.Ext(in))] + ".csv"
			}
			if err := h.ExportCSV(out); err != nil {
				return err
			}
			fmt.Println("written", out)
			return nil
		},
	}
}

func compareCommand() cli.Command {
	return cli.Command{
		Name:      "compare",
		Usage:     "rank solvers per instance and write a comparison report",
		ArgsUsage: "<results.json>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "format, f", Usage: "report format: csv, markdown or xlsx (default: from config)"},
			cli.StringFlag{Name: "out, o", Usage: "output file (default: stdout, xlsx requires a file)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("expected exactly one results file", 1)
			}
			h, err := loadResults(c.Args().First())
			if err != nil {
				return err
			}

			reportCfg := cfg.Report
			if f := c.String("format"); f != "" {
				reportCfg.Format = f
			}
			gen, err := report.New(&reportCfg)
			if err != nil {
				return err
			}

			results := h.Results()
			data := &report.Data{
				Title:       "VRP Benchmark Comparison",
				GeneratedAt: time.Now(),
				Summary:     h.ResultsSummary(),
				Comparisons: buildComparisons(results),
				Results:     results,
			}

			out, err := gen.Generate(data)
			if err != nil {
				return err
			}

			if path := c.String("out"); path != "" {
				if err := os.WriteFile(path, out, 0o644); err != nil {
					return err
				}
				fmt.Println("written", path)
				return nil
			}
			if gen.Format() == report.FormatXLSX {
				return cli.NewExitError("xlsx output requires --out", 1)
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

// buildComparisons группирует результаты по инстансам; при повторных запусках
// одного решателя побеждает последний результат
func buildComparisons(results []*model.VRPSolution) []*analysis.Comparison {
	byInstance := make(map[string]map[string]*model.VRPSolution)
	for _, sol := range results {
		cell, ok := byInstance[sol.InstanceName]
		if !ok {
			cell = make(map[string]*model.VRPSolution)
			byInstance[sol.InstanceName] = cell
		}
		cell[sol.SolverName] = sol
	}

	names := make([]string, 0, len(byInstance))
	for name := range byInstance {
		names = append(names, name)
	}
	sort.Strings(names)

	comparisons := make([]*analysis.Comparison, 0, len(names))
	for _, name := range names {
		cmp := analysis.CompareSolutions(byInstance[name])
		cmp.InstanceName = name
		comparisons = append(comparisons, cmp)
	}
	return comparisons
}

func validateCommand() cli.Command {
	return cli.Command{
		Name:      "validate",
		Usage:     "audit solution feasibility against instances embedded in the export",
		ArgsUsage: "<results.json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.NewExitError("expected exactly one results file", 1)
			}
			h, err := loadResults(c.Args().First())
			if err != nil {
				return err
			}

			violations := 0
			for _, sol := range h.Results() {
				inst, ok := h.Instance(sol.InstanceName)
				if !ok {
					fmt.Printf("%s / %s: SKIP (instance not in export)\n", sol.SolverName, sol.InstanceName)
					continue
				}
				feasible, issues := analysis.ValidateFeasibility(inst, sol)
				if feasible {
					fmt.Printf("%s / %s: OK\n", sol.SolverName, sol.InstanceName)
					continue
				}
				violations += len(issues)
				fmt.Printf("%s / %s: INFEASIBLE\n", sol.SolverName, sol.InstanceName)
				for _, issue := range issues {
					fmt.Println("  -", issue)
				}
			}
			if violations > 0 {
				return cli.NewExitError(fmt.Sprintf("%d violations found", violations), 1)
			}
			return nil
		},
	}
}

func generateCommand() cli.Command {
	return cli.Command{
		Name:  "generate",
		Usage: "generate a synthetic VRP instance and write it as JSON",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "type, t", Value: "sample", Usage: "generator: sample, clustered or vrptw"},
			cli.StringFlag{Name: "name, n", Value: "sample", Usage: "instance name"},
			cli.IntFlag{Name: "customers, c", Value: 10, Usage: "number of customers"},
			cli.IntFlag{Name: "clusters", Value: 3, Usage: "number of clusters (clustered only)"},
			cli.Int64Flag{Name: "seed, s", Value: 42, Usage: "random seed"},
			cli.StringFlag{Name: "out, o", Usage: "output file (default: <name>.json)"},
		},
		Action: func(c *cli.Context) error {
			var (
				inst *model.VRPInstance
				err  error
			)
			name := c.String("name")
			customers := c.Int("customers")
			seed := c.Int64("seed")

			switch c.String("type") {
			case "sample":
				inst, err = instancegen.Sample(name, customers, seed, instancegen.Params{})
			case "clustered":
				inst, err = instancegen.Clustered(name, customers, c.Int("clusters"), seed, instancegen.Params{})
			case "vrptw":
				inst, err = instancegen.TimeWindows(name, customers, seed, instancegen.Params{})
			default:
				return cli.NewExitError("unknown generator type: "+c.String("type"), 1)
			}
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				out = name + ".json"
			}
			data, err := json.MarshalIndent(inst, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Println("written", out)
			return nil
		},
	}
}
