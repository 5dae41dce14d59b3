package report

import (
	"fmt"
	"sort"
	"strings"
)

// MarkdownGenerator генератор Markdown отчётов
type MarkdownGenerator struct {
	BaseGenerator
}

// NewMarkdownGenerator создаёт новый генератор
func NewMarkdownGenerator(precision int) *MarkdownGenerator {
	return &MarkdownGenerator{BaseGenerator{precision: precision}}
}

// Format возвращает формат генератора
func (g *MarkdownGenerator) Format() Format {
	return FormatMarkdown
}

// Generate генерирует Markdown отчёт
func (g *MarkdownGenerator) Generate(data *Data) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("# " + g.GetTitle(data) + "\n\n")
	if !data.GeneratedAt.IsZero() {
		sb.WriteString("Generated: " + g.FormatTimestamp(data.GeneratedAt) + "\n\n")
	}

	g.writeSummaryMD(&sb, data)
	g.writeComparisonsMD(&sb, data)
	g.writeResultsMD(&sb, data)

	return []byte(sb.String()), nil
}

func (g *MarkdownGenerator) writeSummaryMD(sb *strings.Builder, data *Data) {
	if data.Summary == nil {
		return
	}
	s := data.Summary

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(sb, "- Total results: %d\n", s.TotalResults)
	fmt.Fprintf(sb, "- Successful: %d (%s)\n", s.SuccessfulResults, g.FormatPercent(s.OverallSuccessRate))
	fmt.Fprintf(sb, "- Instances: %d, solvers: %d\n\n", s.UniqueInstances, s.UniqueSolvers)

	if len(s.Solvers) == 0 {
		return
	}

	names := make([]string, 0, len(s.Solvers))
	for name := range s.Solvers {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString("| Solver | Runs | Successful | Success Rate | Avg Distance | Best | Worst | Avg Time (s) |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, name := range names {
		ss := s.Solvers[name]
		if ss.AvgDistance == nil {
			fmt.Fprintf(sb, "| %s | %d | %d | %s | - | - | - | - |\n",
				name, ss.Runs, ss.Successful, g.FormatPercent(ss.SuccessRate))
			continue
		}
		fmt.Fprintf(sb, "| %s | %d | %d | %s | %s | %s | %s | %s |\n",
			name, ss.Runs, ss.Successful, g.FormatPercent(ss.SuccessRate),
			g.FormatFloat(*ss.AvgDistance), g.FormatFloat(*ss.BestDistance),
			g.FormatFloat(*ss.WorstDistance), g.FormatFloat(*ss.AvgSolveTime))
	}
	sb.WriteString("\n")
}

func (g *MarkdownGenerator) writeComparisonsMD(sb *strings.Builder, data *Data) {
	for _, cmp := range data.Comparisons {
		if cmp == nil {
			continue
		}
		fmt.Fprintf(sb, "## Comparison: %s\n\n", cmp.InstanceName)
		if cmp.AllFailed {
			sb.WriteString("All solvers failed.\n\n")
			continue
		}
		fmt.Fprintf(sb, "Best: **%s** (%s)\n\n", cmp.BestSolver, g.FormatFloat(cmp.BestDistance))

		sb.WriteString("| Solver | Status | Distance | Routes | Time (s) | Gap % |\n")
		sb.WriteString("|---|---|---|---|---|---|\n")
		for _, e := range cmp.Entries {
			gap := "-"
			if e.GapPercent != nil {
				gap = g.FormatFloat(*e.GapPercent)
			}
			fmt.Fprintf(sb, "| %s | %s | %s | %d | %s | %s |\n",
				e.SolverName, e.Status, g.FormatFloat(e.TotalDistance),
				e.NumRoutes, g.FormatFloat(e.SolveTime), gap)
		}
		sb.WriteString("\n")
	}
}

func (g *MarkdownGenerator) writeResultsMD(sb *strings.Builder, data *Data) {
	if len(data.Results) == 0 {
		return
	}
	sb.WriteString("## Results\n\n")
	for _, sol := range data.Results {
		sb.WriteString("- " + FormatSolutionSummary(sol) + "\n")
	}
	sb.WriteString("\n")
}
