// Package repository persists benchmark results so runs can be compared
// across process restarts. Two implementations exist: an in-memory store for
// tests and single-shot runs, and a PostgreSQL store for durable history.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vrpbench/internal/model"
)

// Стандартные ошибки
var (
	ErrResultNotFound = errors.New("benchmark result not found")
)

// ResultRecord строка истории: одно решение с метаданными сохранения
type ResultRecord struct {
	ID             string
	SolverName     string
	InstanceName   string
	Status         string
	TotalDistance  float64
	TotalTime      float64
	SolveTime      float64
	ObjectiveValue float64
	NumRoutes      int
	Routes         []byte // JSON
	CreatedAt      time.Time
}

// NewRecord создаёт запись истории из решения
func NewRecord(sol *model.VRPSolution) (*ResultRecord, error) {
	routes := sol.Routes
	if routes == nil {
		routes = []model.Route{}
	}
	data, err := json.Marshal(routes)
	if err != nil {
		return nil, err
	}

	return &ResultRecord{
		SolverName:     sol.SolverName,
		InstanceName:   sol.InstanceName,
		Status:         sol.Status,
		TotalDistance:  sol.TotalDistance,
		TotalTime:      sol.TotalTime,
		SolveTime:      sol.SolveTime,
		ObjectiveValue: sol.ObjectiveValue,
		NumRoutes:      len(routes),
		Routes:         data,
	}, nil
}

// ToSolution восстанавливает решение из записи
func (r *ResultRecord) ToSolution() (*model.VRPSolution, error) {
	var routes []model.Route
	if len(r.Routes) > 0 {
		if err := json.Unmarshal(r.Routes, &routes); err != nil {
			return nil, err
		}
	}
	if routes == nil {
		routes = []model.Route{}
	}

	return &model.VRPSolution{
		SolverName:     r.SolverName,
		InstanceName:   r.InstanceName,
		Routes:         routes,
		TotalDistance:  r.TotalDistance,
		TotalTime:      r.TotalTime,
		SolveTime:      r.SolveTime,
		Status:         r.Status,
		ObjectiveValue: r.ObjectiveValue,
	}, nil
}

// ListFilter фильтры списка результатов
type ListFilter struct {
	SolverName   string
	InstanceName string
	Status       string
}

// ListOptions опции выборки
type ListOptions struct {
	Limit  int
	Offset int
	Filter *ListFilter
}

// ResultRepository интерфейс хранилища результатов
type ResultRepository interface {
	// Save сохраняет решение и возвращает идентификатор записи
	Save(ctx context.Context, sol *model.VRPSolution) (string, error)
	// GetByID возвращает запись по идентификатору
	GetByID(ctx context.Context, id string) (*ResultRecord, error)
	// List возвращает страницу записей (новые сначала) и общее число
	List(ctx context.Context, opts *ListOptions) ([]*ResultRecord, int64, error)
	// Delete удаляет запись
	Delete(ctx context.Context, id string) error
	// Clear удаляет все записи и возвращает их число
	Clear(ctx context.Context) (int64, error)
}
