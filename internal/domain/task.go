package domain

import (
	"fmt"
)

// Status is the completion state of a task.
type Status string

const (
	StatusComplete   Status = "Complete"
	StatusIncomplete Status = "Incomplete"
)

// Statuses lists every status value that may be persisted.
var Statuses = []Status{StatusComplete, StatusIncomplete}

// IsValid reports whether s is one of the two persisted status values.
func (s Status) IsValid() bool {
	return s == StatusComplete || s == StatusIncomplete
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusComplete {
		return StatusIncomplete
	}
	return StatusComplete
}

// String returns the status as stored and sent over the wire.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts raw input into a Status.
// Matching is exact: "complete" is not accepted.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("status must be %s or %s", StatusComplete, StatusIncomplete)
	}
	return s, nil
}

// Task represents a task in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      Status `json:"status"`
	Description string `json:"description"`
}

// NewTask creates a new Task without an id. Stores assign ids.
func NewTask(name string, status Status, description string) Task {
	return Task{
		Name:        name,
		Status:      status,
		Description: description,
	}
}

// IsValid checks if the task satisfies the stored-record invariants,
// apart from id assignment.
func (t Task) IsValid() bool {
	return t.Name != "" && t.Status.IsValid()
}

// IsComplete reports whether the task is marked complete.
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}
