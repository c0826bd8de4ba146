package services

import (
	"context"

	"todo-list/internal/domain"
)

// CreateTaskInput carries the fields of a new task. A nil Description is
// stored as an empty string.
type CreateTaskInput struct {
	Name        string        `json:"name"`
	Status      domain.Status `json:"status"`
	Description *string       `json:"description,omitempty"`
}

// TaskService is the validating boundary between callers and the task store.
// Implementations return errors from the internal/errors package: invalid
// input and not found are reported as such, everything else as storage or
// timeout failures.
type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Store is the subset of store.TaskStore the service depends on.
type Store interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, name string, status domain.Status, description *string) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
