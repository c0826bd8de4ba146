// Package store owns the canonical task collection. It is the only component
// that writes to a repository.
package store

import (
	"context"
	"strings"
	"sync"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/repository"
)

// TaskStore enforces the task invariants on top of a repository and assigns ids.
// Mutations are serialized so read-modify-write updates never interleave.
type TaskStore struct {
	mu   sync.Mutex
	repo repository.Repository
	ids  IDGenerator
	log  logging.Logger
}

// New creates a store. A nil ids falls back to UUIDGenerator.
func New(repo repository.Repository, ids IDGenerator, log logging.Logger) *TaskStore {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if log == nil {
		log = logging.Default()
	}
	return &TaskStore{repo: repo, ids: ids, log: log.With("component", "store")}
}

// List returns every task in insertion order. An empty store yields an empty slice.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Get returns the task with id or a not found error.
func (s *TaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.Get(ctx, id)
}

// Create appends a new task with a fresh id. A nil description is stored as "".
func (s *TaskStore) Create(ctx context.Context, name string, status domain.Status, description *string) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidInputError("name", name, "is required")
	}
	if !status.IsValid() {
		return nil, errors.NewInvalidInputError("status", status, "must be Complete or Incomplete")
	}

	task := domain.NewTask(name, status, "")
	if description != nil {
		task.Description = *description
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.ids.NewID()
	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}
	s.log.Debug("Task created", "id", task.ID)
	return &task, nil
}

// Update merges the supplied fields of patch into the stored task.
// The id never changes.
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, errors.NewInvalidInputError("status", *patch.Status, "must be Complete or Incomplete")
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, errors.NewInvalidInputError("name", *patch.Name, "must not be empty")
		}
		patch.Name = &trimmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*current)
	updated.ID = current.ID
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	s.log.Debug("Task updated", "id", id)
	return &updated, nil
}

// Delete removes the task with id.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Debug("Task deleted", "id", id)
	return nil
}

// Seed inserts tasks when the store is empty and reports how many were added.
// Tasks without an id get one from the generator.
func (s *TaskStore) Seed(ctx context.Context, tasks []domain.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, task := range tasks {
		if !task.IsValid() {
			return i, errors.NewInvalidInputError("seed", task.Name, "task is not valid")
		}
		if task.ID == "" {
			task.ID = s.ids.NewID()
		}
		if err := s.repo.Insert(ctx, task); err != nil {
			return i, err
		}
	}
	s.log.Info("Seeded sample tasks", "count", len(tasks))
	return len(tasks), nil
}

// Close closes the underlying repository.
func (s *TaskStore) Close() error {
	return s.repo.Close()
}

// SampleTasks returns the two records a fresh server starts with.
func SampleTasks() []domain.Task {
	return []domain.Task{
		{
			ID:          "1",
			Name:        "Sample Task 1",
			Status:      domain.StatusIncomplete,
			Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		},
		{
			ID:          "2",
			Name:        "Sample Task 2",
			Status:      domain.StatusComplete,
			Description: "Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
		},
	}
}
