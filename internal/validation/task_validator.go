package validation

import (
	"todo-list/internal/config"
	"todo-list/internal/domain"
)

// Field names used in validation errors and API responses.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldStatus      = "status"
	FieldDescription = "description"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskName validates a task name for creation or update
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError(FieldName)
		return validationError
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		validationError.AddInvalidLengthError(FieldName, trimmedName,
			tv.validator.TaskNameMinLength(), tv.validator.TaskNameMaxLength())
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateStatus validates a status value
func (tv *TaskValidator) ValidateStatus(status domain.Status) error {
	if status == "" {
		validationError := NewValidationError()
		validationError.AddRequiredError(FieldStatus)
		return validationError
	}
	if !tv.validator.IsValidStatus(status) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError(FieldStatus, status, "must be Complete or Incomplete")
		return validationError
	}
	return nil
}

// ValidateDescription validates a description value
func (tv *TaskValidator) ValidateDescription(description string) error {
	if !tv.validator.IsValidDescriptionLength(description) {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError(FieldDescription, len(description), 0, tv.validator.DescriptionMaxLength())
		return validationError
	}
	return nil
}

// ValidateTaskForCreation validates the fields of a new task
func (tv *TaskValidator) ValidateTaskForCreation(name string, status domain.Status, description *string) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTaskName(name))
	validationError.Merge(tv.ValidateStatus(status))
	if description != nil {
		validationError.Merge(tv.ValidateDescription(*description))
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskForUpdate validates an id together with the supplied fields of a patch.
// Absent fields are not checked.
func (tv *TaskValidator) ValidateTaskForUpdate(id string, patch domain.TaskPatch) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTaskID(id))
	if patch.Name != nil {
		validationError.Merge(tv.ValidateTaskName(*patch.Name))
	}
	if patch.Status != nil {
		validationError.Merge(tv.ValidateStatus(*patch.Status))
	}
	if patch.Description != nil {
		validationError.Merge(tv.ValidateDescription(*patch.Description))
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTask validates a domain.Task object
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	validationError.Merge(tv.ValidateTaskID(task.ID))
	validationError.Merge(tv.ValidateTaskName(task.Name))
	validationError.Merge(tv.ValidateStatus(task.Status))

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError(FieldID)
		return validationError
	}
	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}

// NormalizePatch returns a copy of patch with a trimmed name.
func (tv *TaskValidator) NormalizePatch(patch domain.TaskPatch) domain.TaskPatch {
	if patch.Name != nil {
		trimmed := tv.validator.TrimAndValidateString(*patch.Name)
		patch.Name = &trimmed
	}
	return patch
}
