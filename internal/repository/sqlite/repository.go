// Package sqlite stores tasks in a SQLite database through modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes per-operation deadlines. Zero values disable the deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements repository.Repository
type SQLiteRepository struct {
	db     *sql.DB
	mapper *TaskMapper
	opts   Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, runs pending migrations and applies opts.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, mapper: NewTaskMapper(), opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// List retrieves all tasks in insertion order
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq ASC`
	rows, err := QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
	if err != nil {
		return nil, err
	}
	return r.mapper.FromDatabaseSlice(rows), nil
}

// Get retrieves a task by ID
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row, err := QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
	if err != nil {
		return nil, err
	}
	task := r.mapper.FromDatabase(*row)
	return &task, nil
}

// Insert appends a new task
func (r *SQLiteRepository) Insert(ctx context.Context, task domain.Task) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	row := r.mapper.ToDatabase(task)
	query := `INSERT INTO tasks (id, name, status, description) VALUES (?, ?, ?, ?)`
	_, err := ExecuteWithLastInsertID(ctx, r.db, "insert task", query, row.ID, row.Name, row.Status, row.Description)
	return err
}

// Update replaces the stored fields of an existing task
func (r *SQLiteRepository) Update(ctx context.Context, task domain.Task) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	row := r.mapper.ToDatabase(task)
	query := `UPDATE tasks SET name = ?, status = ?, description = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, "update task", query, "task", row.ID, row.Name, row.Status, row.Description, row.ID)
}

// Delete deletes a task by ID
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, "delete task", query, "task", id, id)
}

func (r *SQLiteRepository) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
