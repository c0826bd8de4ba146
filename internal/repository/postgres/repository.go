// Package postgres stores tasks in PostgreSQL through pgx.
package postgres

import (
	"context"
	stderrors "errors"

	"todo-list/internal/domain"
	"todo-list/internal/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the minimal database interface the repository depends on (pgxpool or pgxmock).
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const taskColumns = "id, name, status, description"

// Repository implements repository.Repository on top of a pgx connection pool.
type Repository struct {
	db   DB
	pool *pgxpool.Pool
}

// NewRepository wraps an existing connection. The caller owns its lifecycle.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// Open migrates the schema, connects a pool and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	if err := ApplyMigrations(ctx, dsn); err != nil {
		return nil, errors.NewStorageError("run migrations", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.NewStorageError("open pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError("ping", err)
	}
	return &Repository{db: pool, pool: pool}, nil
}

// Close releases the pool when the repository opened it.
func (r *Repository) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY seq ASC`)
	if err != nil {
		return nil, wrap("list tasks", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, wrap("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list tasks", err)
	}
	return tasks, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("task", id)
		}
		return nil, wrap("get task", err)
	}
	return &task, nil
}

func (r *Repository) Insert(ctx context.Context, task domain.Task) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (id, name, status, description) VALUES ($1, $2, $3, $4)`,
		task.ID, task.Name, string(task.Status), task.Description)
	if err != nil {
		return wrap("insert task", err)
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, task domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET name = $1, status = $2, description = $3 WHERE id = $4`,
		task.Name, string(task.Status), task.Description, task.ID)
	if err != nil {
		return wrap("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("task", task.ID)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return wrap("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NewNotFoundError("task", id)
	}
	return nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		task   domain.Task
		status string
	)
	if err := row.Scan(&task.ID, &task.Name, &status, &task.Description); err != nil {
		return domain.Task{}, err
	}
	task.Status = domain.Status(status)
	return task, nil
}

func wrap(operation string, err error) error {
	if converted := errors.FromContextError(operation, err); converted != err {
		return converted
	}
	return errors.NewStorageError(operation, err)
}
