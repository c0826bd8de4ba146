package validation

import (
	"strings"
	"testing"

	"todo-list/internal/config"
	"todo-list/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidator_ValidateTaskName(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid name", "Task 1", false, ""},
		{"Empty name", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Long name is unlimited by default", strings.Repeat("a", 300), false, ""},
		{"Special characters allowed", "Task@#$%", false, ""},
		{"Valid with punctuation", "Task! (important)", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskName(tt.input)

			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)
			assert.Equal(t, tt.errorType, validationErr.Errors[0].Type)
			assert.Equal(t, FieldName, validationErr.Errors[0].Field)
		})
	}
}

func TestTaskValidator_ConfiguredNameLimit(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TaskNameMaxLength = 10
	validator := NewTaskValidatorWithConfig(cfg)

	assert.NoError(t, validator.ValidateTaskName(strings.Repeat("a", 10)))

	err := validator.ValidateTaskName(strings.Repeat("a", 11))
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, ErrorTypeInvalidLength, validationErr.Errors[0].Type)
	assert.Equal(t, "name must be between 1 and 10 characters long", validationErr.Errors[0].Message)
}

func TestTaskValidator_ValidateStatus(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name      string
		status    domain.Status
		errorType ValidationErrorType
	}{
		{"Complete", domain.StatusComplete, ""},
		{"Incomplete", domain.StatusIncomplete, ""},
		{"Missing", "", ErrorTypeRequired},
		{"Lowercase", "complete", ErrorTypeInvalidValue},
		{"Unknown", "Done", ErrorTypeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStatus(tt.status)
			if tt.errorType == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.errorType, validationErr.Errors[0].Type)
		})
	}
}

func TestTaskValidator_ValidateTaskForCreation(t *testing.T) {
	validator := NewTaskValidator()

	t.Run("valid input", func(t *testing.T) {
		assert.NoError(t, validator.ValidateTaskForCreation("Buy milk", domain.StatusIncomplete, nil))
	})

	t.Run("collects every failing field", func(t *testing.T) {
		err := validator.ValidateTaskForCreation("  ", "Done", nil)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Errors, 2)
		assert.Len(t, validationErr.GetFieldErrors(FieldName), 1)
		assert.Len(t, validationErr.GetFieldErrors(FieldStatus), 1)
		assert.Equal(t, "name is required; status must be Complete or Incomplete", validationErr.GetUserFriendlyMessage())
	})
}

func TestTaskValidator_ValidateTaskForUpdate(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		id          string
		patch       domain.TaskPatch
		expectError bool
	}{
		{"empty patch", "1", domain.TaskPatch{}, false},
		{"status only", "1", domain.StatusPatch(domain.StatusComplete), false},
		{"cleared description", "1", domain.TaskPatch{Description: domain.StringPtr("")}, false},
		{"invalid status", "1", domain.StatusPatch("Done"), true},
		{"blank supplied name", "1", domain.TaskPatch{Name: domain.StringPtr("  ")}, true},
		{"missing id", "", domain.TaskPatch{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskForUpdate(tt.id, tt.patch)
			if tt.expectError {
				assert.True(t, IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskValidator_ValidateTask(t *testing.T) {
	validator := NewTaskValidator()

	assert.NoError(t, validator.ValidateTask(domain.Task{ID: "1", Name: "a", Status: domain.StatusComplete}))
	assert.Error(t, validator.ValidateTask(domain.Task{Name: "a", Status: domain.StatusComplete}))
	assert.Error(t, validator.ValidateTask(domain.Task{ID: "1", Name: "a", Status: "x"}))
}

func TestTaskValidator_GetValidTaskName(t *testing.T) {
	validator := NewTaskValidator()

	name, err := validator.GetValidTaskName("  Buy milk  ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", name)

	_, err = validator.GetValidTaskName("")
	assert.Error(t, err)
}

func TestTaskValidator_NormalizePatch(t *testing.T) {
	validator := NewTaskValidator()

	patch := validator.NormalizePatch(domain.TaskPatch{Name: domain.StringPtr("  x  ")})
	assert.Equal(t, "x", *patch.Name)

	empty := validator.NormalizePatch(domain.TaskPatch{})
	assert.Nil(t, empty.Name)
}
