package services

import (
	"context"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store         Store
	taskValidator *validation.TaskValidator
	log           logging.Logger
}

// NewTaskService creates a new TaskService instance with default validation limits
func NewTaskService(store Store) TaskService {
	return NewTaskServiceWithValidator(store, validation.NewTaskValidator(), nil)
}

// NewTaskServiceWithValidator creates a TaskService using the given validator and logger
func NewTaskServiceWithValidator(store Store, validator *validation.TaskValidator, log logging.Logger) TaskService {
	if validator == nil {
		validator = validation.NewTaskValidator()
	}
	if log == nil {
		log = logging.Default()
	}
	return &taskServiceImpl{
		store:         store,
		taskValidator: validator,
		log:           log.With("component", "task_service"),
	}
}

// ListTasks returns all tasks in insertion order
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := t.store.List(ctx)
	if err != nil {
		return nil, t.report("list tasks", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task id", err)
	}

	task, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, t.report("get task", err)
	}
	return task, nil
}

// CreateTask validates input and creates a new task
func (t *taskServiceImpl) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForCreation(input.Name, input.Status, input.Description); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	name, err := t.taskValidator.GetValidTaskName(input.Name)
	if err != nil {
		return nil, errors.NewValidationError("invalid task name", err)
	}

	task, err := t.store.Create(ctx, name, input.Status, input.Description)
	if err != nil {
		return nil, t.report("create task", err)
	}
	return task, nil
}

// UpdateTask validates the supplied fields and merges them into the task
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForUpdate(id, patch); err != nil {
		// An unknown id is reported before a bad patch. Nothing is written either way.
		if _, getErr := t.store.Get(ctx, id); errors.IsNotFound(getErr) {
			return nil, getErr
		}
		return nil, errors.NewValidationError("invalid task update", err)
	}

	task, err := t.store.Update(ctx, id, t.taskValidator.NormalizePatch(patch))
	if err != nil {
		return nil, t.report("update task", err)
	}
	return task, nil
}

// DeleteTask removes a task. Any id the store does not hold, blank ones
// included, is not found.
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := t.store.Delete(ctx, id); err != nil {
		return t.report("delete task", err)
	}
	return nil
}

// report normalizes err into an AppError and logs system failures.
func (t *taskServiceImpl) report(operation string, err error) error {
	if !errors.IsAppError(err) {
		err = errors.FromContextError(operation, err)
		if !errors.IsAppError(err) {
			err = errors.NewStorageError(operation, err)
		}
	}
	if errors.ShouldLogError(err) {
		t.log.Error("Task operation failed", errors.LogValues(err)...)
	}
	return err
}
