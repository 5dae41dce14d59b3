package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Стандартные ключи атрибутов
const (
	// Экземпляр задачи
	AttrInstanceName      = "instance.name"
	AttrInstanceCustomers = "instance.customers"
	AttrInstanceVehicles  = "instance.vehicles"
	AttrProblemType       = "instance.problem_type"

	// Решатель
	AttrSolverName     = "solver.name"
	AttrSolverCategory = "solver.category"
	AttrSolveStatus    = "solver.status"
	AttrTotalDistance  = "solver.total_distance"
	AttrNumRoutes      = "solver.num_routes"

	// Валидация
	AttrValidationIssues = "validation.issues"
	AttrValidationPassed = "validation.passed"
)

// InstanceAttributes возвращает атрибуты экземпляра задачи
func InstanceAttributes(name, problemType string, customers, vehicles int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrInstanceName, name),
		attribute.String(AttrProblemType, problemType),
		attribute.Int(AttrInstanceCustomers, customers),
		attribute.Int(AttrInstanceVehicles, vehicles),
	}
}

// SolveAttributes возвращает атрибуты результата решения
func SolveAttributes(solverName, status string, distance float64, routes int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSolverName, solverName),
		attribute.String(AttrSolveStatus, status),
		attribute.Float64(AttrTotalDistance, distance),
		attribute.Int(AttrNumRoutes, routes),
	}
}

// ValidationAttributes возвращает атрибуты валидации
func ValidationAttributes(issues int, passed bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrValidationIssues, issues),
		attribute.Bool(AttrValidationPassed, passed),
	}
}
