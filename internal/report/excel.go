package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ExcelGenerator генератор XLSX отчётов
type ExcelGenerator struct {
	BaseGenerator
	includeRoutes bool
}

// NewExcelGenerator создаёт новый генератор
func NewExcelGenerator(precision int, includeRoutes bool) *ExcelGenerator {
	return &ExcelGenerator{
		BaseGenerator: BaseGenerator{precision: precision},
		includeRoutes: includeRoutes,
	}
}

// Format возвращает формат генератора
func (g *ExcelGenerator) Format() Format {
	return FormatXLSX
}

// Generate генерирует XLSX отчёт
func (g *ExcelGenerator) Generate(data *Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	g.writeSummarySheet(f, data)
	g.writeComparisonSheet(f, data)
	if g.includeRoutes {
		g.writeRoutesSheet(f, data)
	}

	// Удаляем дефолтный лист
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write error: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ExcelGenerator) headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func (g *ExcelGenerator) writeSummarySheet(f *excelize.File, data *Data) {
	const sheet = "Summary"
	f.NewSheet(sheet)
	style := g.headerStyle(f)

	row := 1
	f.SetCellValue(sheet, cellAddr("A", row), g.GetTitle(data))
	f.MergeCell(sheet, cellAddr("A", row), cellAddr("D", row))
	row += 2

	if data.Summary == nil {
		return
	}
	s := data.Summary

	f.SetCellValue(sheet, cellAddr("A", row), "Overall")
	f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("B", row), style)
	row++
	f.SetCellValue(sheet, cellAddr("A", row), "Total Results")
	f.SetCellValue(sheet, cellAddr("B", row), s.TotalResults)
	row++
	f.SetCellValue(sheet, cellAddr("A", row), "Successful Results")
	f.SetCellValue(sheet, cellAddr("B", row), s.SuccessfulResults)
	row++
	f.SetCellValue(sheet, cellAddr("A", row), "Success Rate")
	f.SetCellValue(sheet, cellAddr("B", row), g.FormatPercent(s.OverallSuccessRate))
	row++
	f.SetCellValue(sheet, cellAddr("A", row), "Unique Instances")
	f.SetCellValue(sheet, cellAddr("B", row), s.UniqueInstances)
	row++
	f.SetCellValue(sheet, cellAddr("A", row), "Unique Solvers")
	f.SetCellValue(sheet, cellAddr("B", row), s.UniqueSolvers)
	row += 2

	if len(s.Solvers) == 0 {
		return
	}

	names := make([]string, 0, len(s.Solvers))
	for name := range s.Solvers {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := []string{"Solver", "Runs", "Successful", "Success Rate", "Avg Distance", "Best Distance", "Worst Distance", "Avg Time (s)"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellAddr(string(rune('A'+i)), row), h)
	}
	f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("H", row), style)
	row++

	for _, name := range names {
		ss := s.Solvers[name]
		f.SetCellValue(sheet, cellAddr("A", row), name)
		f.SetCellValue(sheet, cellAddr("B", row), ss.Runs)
		f.SetCellValue(sheet, cellAddr("C", row), ss.Successful)
		f.SetCellValue(sheet, cellAddr("D", row), g.FormatPercent(ss.SuccessRate))
		if ss.AvgDistance != nil {
			f.SetCellValue(sheet, cellAddr("E", row), *ss.AvgDistance)
			f.SetCellValue(sheet, cellAddr("F", row), *ss.BestDistance)
			f.SetCellValue(sheet, cellAddr("G", row), *ss.WorstDistance)
			f.SetCellValue(sheet, cellAddr("H", row), *ss.AvgSolveTime)
		}
		row++
	}
}

func (g *ExcelGenerator) writeComparisonSheet(f *excelize.File, data *Data) {
	if len(data.Comparisons) == 0 {
		return
	}
	const sheet = "Comparison"
	f.NewSheet(sheet)
	style := g.headerStyle(f)

	row := 1
	for _, cmp := range data.Comparisons {
		if cmp == nil {
			continue
		}
		f.SetCellValue(sheet, cellAddr("A", row), "Instance: "+cmp.InstanceName)
		f.MergeCell(sheet, cellAddr("A", row), cellAddr("F", row))
		row++

		if cmp.AllFailed {
			f.SetCellValue(sheet, cellAddr("A", row), "All solvers failed")
			row += 2
			continue
		}

		f.SetCellValue(sheet, cellAddr("A", row), "Best Solver")
		f.SetCellValue(sheet, cellAddr("B", row), cmp.BestSolver)
		f.SetCellValue(sheet, cellAddr("C", row), cmp.BestDistance)
		row++

		headers := []string{"Solver", "Status", "Distance", "Routes", "Time (s)", "Gap %"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellAddr(string(rune('A'+i)), row), h)
		}
		f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("F", row), style)
		row++

		for _, e := range cmp.Entries {
			f.SetCellValue(sheet, cellAddr("A", row), e.SolverName)
			f.SetCellValue(sheet, cellAddr("B", row), e.Status)
			if e.Valid {
				f.SetCellValue(sheet, cellAddr("C", row), e.TotalDistance)
			} else {
				f.SetCellValue(sheet, cellAddr("C", row), "ERR")
			}
			f.SetCellValue(sheet, cellAddr("D", row), e.NumRoutes)
			f.SetCellValue(sheet, cellAddr("E", row), e.SolveTime)
			if e.GapPercent != nil {
				f.SetCellValue(sheet, cellAddr("F", row), *e.GapPercent)
			}
			row++
		}
		row++
	}
}

func (g *ExcelGenerator) writeRoutesSheet(f *excelize.File, data *Data) {
	if len(data.Results) == 0 {
		return
	}
	const sheet = "Routes"
	f.NewSheet(sheet)
	style := g.headerStyle(f)

	row := 1
	headers := []string{"Solver", "Instance", "Vehicle", "Stops", "Distance", "Demand"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellAddr(string(rune('A'+i)), row), h)
	}
	f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("F", row), style)
	row++

	for _, sol := range data.Results {
		for _, rt := range sol.Routes {
			f.SetCellValue(sheet, cellAddr("A", row), sol.SolverName)
			f.SetCellValue(sheet, cellAddr("B", row), sol.InstanceName)
			f.SetCellValue(sheet, cellAddr("C", row), rt.VehicleID)
			f.SetCellValue(sheet, cellAddr("D", row), fmt.Sprint(rt.Locations))
			f.SetCellValue(sheet, cellAddr("E", row), rt.TotalDistance)
			f.SetCellValue(sheet, cellAddr("F", row), rt.TotalDemand)
			row++
		}
	}
}
