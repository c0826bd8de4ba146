package sqlite

import "todo-list/internal/domain"

// TaskRow is a row of the tasks table. Seq is the surrogate key that
// preserves insertion order; ID is the public task id.
type TaskRow struct {
	Seq         int64
	ID          string
	Name        string
	Status      string
	Description string
}

// TaskMapper handles conversion between domain and database task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database row.
func (m *TaskMapper) ToDatabase(task domain.Task) TaskRow {
	return TaskRow{
		ID:          task.ID,
		Name:        task.Name,
		Status:      string(task.Status),
		Description: task.Description,
	}
}

// FromDatabase converts a database row to a domain Task.
func (m *TaskMapper) FromDatabase(row TaskRow) domain.Task {
	return domain.Task{
		ID:          row.ID,
		Name:        row.Name,
		Status:      domain.Status(row.Status),
		Description: row.Description,
	}
}

// FromDatabaseSlice converts rows to domain tasks, keeping order.
func (m *TaskMapper) FromDatabaseSlice(rows []*TaskRow) []domain.Task {
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			tasks = append(tasks, m.FromDatabase(*row))
		}
	}
	return tasks
}
