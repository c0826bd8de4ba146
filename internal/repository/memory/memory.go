// Package memory provides an in-process repository used by default and in tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
)

// Repository keeps tasks in a slice guarded by a RWMutex.
type Repository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{}
}

// List returns a copy of all tasks in insertion order.
func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContextError("list tasks", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContextError("get task", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	task := r.tasks[i]
	return &task, nil
}

func (r *Repository) Insert(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("insert task", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(task.ID) >= 0 {
		return errors.NewStorageError("insert task", fmt.Errorf("duplicate task id %q", task.ID))
	}
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *Repository) Update(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("update task", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(task.ID)
	if i < 0 {
		return errors.NewNotFoundError("task", task.ID)
	}
	r.tasks[i] = task
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("delete task", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// Close is a no-op.
func (r *Repository) Close() error {
	return nil
}

func (r *Repository) indexOf(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
