package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
)

// CSVGenerator генератор CSV отчётов
type CSVGenerator struct {
	BaseGenerator
}

// NewCSVGenerator создаёт новый генератор
func NewCSVGenerator(precision int) *CSVGenerator {
	return &CSVGenerator{BaseGenerator{precision: precision}}
}

// Format возвращает формат генератора
func (g *CSVGenerator) Format() Format {
	return FormatCSV
}

// csvWriter обёртка для отслеживания ошибок
type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

func (cw *csvWriter) Error() error {
	return cw.err
}

// Generate генерирует CSV отчёт
func (g *CSVGenerator) Generate(data *Data) ([]byte, error) {
	var buf bytes.Buffer
	cw := &csvWriter{w: csv.NewWriter(&buf)}

	cw.Write([]string{"# " + g.GetTitle(data)})
	cw.Write([]string{""})

	g.writeSummaryCSV(cw, data)
	g.writeComparisonsCSV(cw, data)
	g.writeResultsCSV(cw, data)

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv write error: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *CSVGenerator) writeSummaryCSV(w *csvWriter, data *Data) {
	if data.Summary == nil {
		return
	}
	s := data.Summary

	w.Write([]string{"Summary"})
	w.Write([]string{"Total Results", strconv.Itoa(s.TotalResults)})
	w.Write([]string{"Successful Results", strconv.Itoa(s.SuccessfulResults)})
	w.Write([]string{"Overall Success Rate", g.FormatPercent(s.OverallSuccessRate)})
	w.Write([]string{"Unique Instances", strconv.Itoa(s.UniqueInstances)})
	w.Write([]string{"Unique Solvers", strconv.Itoa(s.UniqueSolvers)})
	w.Write([]string{""})

	if len(s.Solvers) == 0 {
		return
	}

	names := make([]string, 0, len(s.Solvers))
	for name := range s.Solvers {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Write([]string{"Per-Solver Summary"})
	w.Write([]string{"Solver", "Runs", "Successful", "Success Rate", "Avg Distance", "Best Distance", "Worst Distance", "Avg Time (s)"})
	for _, name := range names {
		ss := s.Solvers[name]
		row := []string{
			name,
			strconv.Itoa(ss.Runs),
			strconv.Itoa(ss.Successful),
			g.FormatPercent(ss.SuccessRate),
			"", "", "", "",
		}
		if ss.AvgDistance != nil {
			row[4] = g.FormatFloat(*ss.AvgDistance)
			row[5] = g.FormatFloat(*ss.BestDistance)
			row[6] = g.FormatFloat(*ss.WorstDistance)
			row[7] = g.FormatFloat(*ss.AvgSolveTime)
		}
		w.Write(row)
	}
	w.Write([]string{""})
}

func (g *CSVGenerator) writeComparisonsCSV(w *csvWriter, data *Data) {
	for _, cmp := range data.Comparisons {
		if cmp == nil {
			continue
		}
		w.Write([]string{"Comparison: " + cmp.InstanceName})
		if cmp.AllFailed {
			w.Write([]string{"All solvers failed"})
			w.Write([]string{""})
			continue
		}
		w.Write([]string{"Best Solver", cmp.BestSolver})
		w.Write([]string{"Best Distance", g.FormatFloat(cmp.BestDistance)})
		w.Write([]string{"Solver", "Status", "Distance", "Routes", "Time (s)", "Gap %"})
		for _, e := range cmp.Entries {
			gap := ""
			if e.GapPercent != nil {
				gap = g.FormatFloat(*e.GapPercent)
			}
			w.Write([]string{
				e.SolverName,
				e.Status,
				g.FormatFloat(e.TotalDistance),
				strconv.Itoa(e.NumRoutes),
				g.FormatFloat(e.SolveTime),
				gap,
			})
		}
		w.Write([]string{""})
	}
}

func (g *CSVGenerator) writeResultsCSV(w *csvWriter, data *Data) {
	if len(data.Results) == 0 {
		return
	}
	w.Write([]string{"Results"})
	w.Write([]string{"Solver", "Instance", "Status", "Distance", "Routes", "Time (s)"})
	for _, sol := range data.Results {
		w.Write([]string{
			sol.SolverName,
			sol.InstanceName,
			sol.Status,
			g.FormatFloat(sol.TotalDistance),
			strconv.Itoa(len(sol.Routes)),
			g.FormatFloat(sol.SolveTime),
		})
	}
}
