package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"vrpbench/internal/model"
	"vrpbench/pkg/database"
	"vrpbench/pkg/telemetry"
)

// PostgresResultRepository PostgreSQL реализация хранилища результатов
type PostgresResultRepository struct {
	db database.DB
}

// NewPostgresResultRepository создаёт новый репозиторий
func NewPostgresResultRepository(db database.DB) *PostgresResultRepository {
	return &PostgresResultRepository{db: db}
}

func (r *PostgresResultRepository) Save(ctx context.Context, sol *model.VRPSolution) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresResultRepository.Save")
	defer span.End()

	rec, err := NewRecord(sol)
	if err != nil {
		return "", fmt.Errorf("failed to encode routes: %w", err)
	}
	rec.ID = uuid.NewString()

	query := `
		INSERT INTO benchmark_results (
			id, solver_name, instance_name, status,
			total_distance, total_time, solve_time, objective_value,
			num_routes, routes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err = r.db.QueryRow(ctx, query,
		rec.ID,
		rec.SolverName,
		rec.InstanceName,
		rec.Status,
		rec.TotalDistance,
		rec.TotalTime,
		rec.SolveTime,
		rec.ObjectiveValue,
		rec.NumRoutes,
		rec.Routes,
	).Scan(&rec.CreatedAt)

	if err != nil {
		return "", fmt.Errorf("failed to save benchmark result: %w", err)
	}

	return rec.ID, nil
}

func (r *PostgresResultRepository) GetByID(ctx context.Context, id string) (*ResultRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresResultRepository.GetByID")
	defer span.End()

	query := `
		SELECT
			id, solver_name, instance_name, status,
			total_distance, total_time, solve_time, objective_value,
			num_routes, routes, created_at
		FROM benchmark_results
		WHERE id = $1
	`

	rec := &ResultRecord{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.SolverName,
		&rec.InstanceName,
		&rec.Status,
		&rec.TotalDistance,
		&rec.TotalTime,
		&rec.SolveTime,
		&rec.ObjectiveValue,
		&rec.NumRoutes,
		&rec.Routes,
		&rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get benchmark result: %w", err)
	}

	return rec, nil
}

func (r *PostgresResultRepository) List(ctx context.Context, opts *ListOptions) ([]*ResultRecord, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresResultRepository.List")
	defer span.End()

	where, args := buildWhere(opts)

	var total int64
	countQuery := "SELECT COUNT(*) FROM benchmark_results" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count benchmark results: %w", err)
	}

	query := `
		SELECT
			id, solver_name, instance_name, status,
			total_distance, total_time, solve_time, objective_value,
			num_routes, routes, created_at
		FROM benchmark_results` + where + `
		ORDER BY created_at DESC`

	if opts != nil && opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts != nil && opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list benchmark results: %w", err)
	}
	defer rows.Close()

	var records []*ResultRecord
	for rows.Next() {
		rec := &ResultRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.SolverName,
			&rec.InstanceName,
			&rec.Status,
			&rec.TotalDistance,
			&rec.TotalTime,
			&rec.SolveTime,
			&rec.ObjectiveValue,
			&rec.NumRoutes,
			&rec.Routes,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan benchmark result: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read benchmark results: %w", err)
	}

	return records, total, nil
}

func (r *PostgresResultRepository) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "PostgresResultRepository.Delete")
	defer span.End()

	tag, err := r.db.Exec(ctx, "DELETE FROM benchmark_results WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete benchmark result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResultNotFound
	}
	return nil
}

func (r *PostgresResultRepository) Clear(ctx context.Context) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostgresResultRepository.Clear")
	defer span.End()

	tag, err := r.db.Exec(ctx, "DELETE FROM benchmark_results")
	if err != nil {
		return 0, fmt.Errorf("failed to clear benchmark results: %w", err)
	}
	return tag.RowsAffected(), nil
}

func buildWhere(opts *ListOptions) (string, []any) {
	if opts == nil || opts.Filter == nil {
		return "", nil
	}

	var clauses []string
	var args []any
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("solver_name", opts.Filter.SolverName)
	add("instance_name", opts.Filter.InstanceName)
	add("status", opts.Filter.Status)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
