// Package repository defines the persistence boundary for tasks.
package repository

import (
	"context"

	"todo-list/internal/domain"
)

// Repository stores complete task records. Implementations keep tasks in
// insertion order and report a missing id with an errors.NotFound AppError.
// Field validation and id assignment happen above this layer.
type Repository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Insert(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Driver names accepted by the repository factory.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverFile     = "file"
)

// Drivers lists every supported driver name.
var Drivers = []string{DriverMemory, DriverSQLite, DriverPostgres, DriverRedis, DriverFile}
