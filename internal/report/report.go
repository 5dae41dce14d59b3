package report

import (
	"fmt"
	"time"

	"vrpbench/internal/analysis"
	"vrpbench/internal/bench"
	"vrpbench/internal/model"
	"vrpbench/pkg/config"
)

// Format формат отчёта
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
)

// Data данные для генерации отчёта
type Data struct {
	Title       string
	GeneratedAt time.Time

	Summary     *bench.Summary
	Comparisons []*analysis.Comparison

	// Результаты для детальных секций
	Results []*model.VRPSolution
}

// Generator интерфейс генератора отчётов
type Generator interface {
	Generate(data *Data) ([]byte, error)
	Format() Format
}

// New создаёт генератор для формата из конфигурации
func New(cfg *config.ReportConfig) (Generator, error) {
	precision := 2
	includeRoutes := false
	format := string(FormatCSV)
	if cfg != nil {
		precision = cfg.FloatPrecision
		includeRoutes = cfg.IncludeRoutes
		format = cfg.Format
	}

	switch Format(format) {
	case FormatCSV:
		return NewCSVGenerator(precision), nil
	case FormatMarkdown:
		return NewMarkdownGenerator(precision), nil
	case FormatXLSX:
		return NewExcelGenerator(precision, includeRoutes), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// BaseGenerator базовые утилиты форматирования
type BaseGenerator struct {
	precision int
}

// FormatFloat форматирует число с заданной точностью
func (b *BaseGenerator) FormatFloat(v float64) string {
	return fmt.Sprintf("%.*f", b.precision, v)
}

// FormatPercent форматирует процент
func (b *BaseGenerator) FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatTimestamp форматирует время
func (b *BaseGenerator) FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// GetTitle возвращает заголовок отчёта
func (b *BaseGenerator) GetTitle(data *Data) string {
	if data != nil && data.Title != "" {
		return data.Title
	}
	return "VRP Benchmark Report"
}

// FormatSolutionSummary однострочное описание решения
func FormatSolutionSummary(sol *model.VRPSolution) string {
	if sol == nil {
		return ""
	}
	if sol.IsError() {
		return fmt.Sprintf("%s: ERROR (time: %.3fs)", sol.SolverName, sol.SolveTime)
	}
	return fmt.Sprintf("%s: %.2f (%d routes, %.3fs)",
		sol.SolverName, sol.TotalDistance, len(sol.Routes), sol.SolveTime)
}
