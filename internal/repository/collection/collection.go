// Package collection stores the whole task list as a single JSON array under
// one key of a key-value backend. Every read loads the full collection and
// every mutation rewrites it.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
)

// DefaultKey is the record name used when none is configured.
const DefaultKey = "todo-list-tasks"

// Backend reads and writes one named record. Load reports found=false when
// the key has never been written.
type Backend interface {
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

// Repository implements repository.Repository over a Backend.
type Repository struct {
	mu      sync.Mutex
	backend Backend
	key     string
	log     logging.Logger
}

// New returns a repository storing its collection under key.
func New(backend Backend, key string, log logging.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logging.Default()
	}
	return &Repository{backend: backend, key: key, log: log.With("component", "collection", "key", key)}
}

func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &tasks[i], nil
}

func (r *Repository) Insert(ctx context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(tasks, task.ID) >= 0 {
		return errors.NewStorageError("insert task", fmt.Errorf("duplicate task id %q", task.ID))
	}
	return r.save(ctx, append(tasks, task))
}

func (r *Repository) Update(ctx context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(tasks, task.ID)
	if i < 0 {
		return errors.NewNotFoundError("task", task.ID)
	}
	tasks[i] = task
	return r.save(ctx, tasks)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}
	return r.save(ctx, append(tasks[:i], tasks[i+1:]...))
}

func (r *Repository) Close() error {
	return r.backend.Close()
}

// load reads the collection. A missing record is an empty collection, and so
// is one that does not decode: the next write replaces it.
func (r *Repository) load(ctx context.Context) ([]domain.Task, error) {
	data, found, err := r.backend.Load(ctx, r.key)
	if err != nil {
		return nil, wrap("load collection", err)
	}
	if !found || len(data) == 0 {
		return []domain.Task{}, nil
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		r.log.Warn("Stored task collection is unreadable, treating it as empty", "error", err)
		return []domain.Task{}, nil
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (r *Repository) save(ctx context.Context, tasks []domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return errors.NewStorageError("encode collection", err)
	}
	if err := r.backend.Save(ctx, r.key, data); err != nil {
		return wrap("save collection", err)
	}
	return nil
}

func indexOf(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func wrap(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	if converted := errors.FromContextError(operation, err); converted != err {
		return converted
	}
	return errors.NewStorageError(operation, err)
}
