package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpbench/internal/model"
)

type pgxMockAdapter struct {
	mock pgxmock.PgxPoolIface
}

func (a *pgxMockAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return a.mock.Exec(ctx, sql, args...)
}

func (a *pgxMockAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return a.mock.Query(ctx, sql, args...)
}

func (a *pgxMockAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return a.mock.QueryRow(ctx, sql, args...)
}

func (a *pgxMockAdapter) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return a.mock.BeginTx(ctx, txOptions)
}

func (a *pgxMockAdapter) Close() {
	a.mock.Close()
}

func (a *pgxMockAdapter) Ping(ctx context.Context) error {
	return a.mock.Ping(ctx)
}

func setupMockDB(t *testing.T) (pgxmock.PgxPoolIface, *PostgresResultRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	repo := NewPostgresResultRepository(&pgxMockAdapter{mock: mock})
	return mock, repo
}

func TestPostgresRepository_Save(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery("INSERT INTO benchmark_results").
		WithArgs(
			pgxmock.AnyArg(), // id
			"greedy", "a", model.StatusFeasible,
			10.0, 0.0, 0.5, 10.0,
			1, pgxmock.AnyArg(), // routes json
		).
		WillReturnRows(rows)

	id, err := repo.Save(context.Background(), storedSolution("greedy", "a", 10))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByID(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "solver_name", "instance_name", "status",
		"total_distance", "total_time", "solve_time", "objective_value",
		"num_routes", "routes", "created_at",
	}).AddRow(
		"rec-1", "greedy", "a", model.StatusFeasible,
		10.0, 0.0, 0.5, 10.0,
		1, []byte(`[{"vehicle_id":1,"locations":[0,1,0],"total_distance":10,"total_demand":3,"total_time":0}]`), now,
	)
	mock.ExpectQuery("SELECT(.+)FROM benchmark_results").
		WithArgs("rec-1").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "greedy", rec.SolverName)

	sol, err := rec.ToSolution()
	require.NoError(t, err)
	assert.Len(t, sol.Routes, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.+)FROM benchmark_results").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrResultNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_List(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT(.+)FROM benchmark_results").
		WithArgs("greedy").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	rows := pgxmock.NewRows([]string{
		"id", "solver_name", "instance_name", "status",
		"total_distance", "total_time", "solve_time", "objective_value",
		"num_routes", "routes", "created_at",
	}).AddRow(
		"rec-1", "greedy", "a", model.StatusFeasible,
		10.0, 0.0, 0.5, 10.0,
		1, []byte(`[]`), time.Now(),
	)
	mock.ExpectQuery("SELECT(.+)FROM benchmark_results(.+)ORDER BY created_at DESC").
		WithArgs("greedy").
		WillReturnRows(rows)

	records, total, err := repo.List(context.Background(), &ListOptions{
		Filter: &ListFilter{SolverName: "greedy"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM benchmark_results WHERE").
		WithArgs("rec-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), "rec-1"))

	mock.ExpectExec("DELETE FROM benchmark_results WHERE").
		WithArgs("rec-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "rec-1"), ErrResultNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Clear(t *testing.T) {
	mock, repo := setupMockDB(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM benchmark_results").
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := repo.Clear(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
