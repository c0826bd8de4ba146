package validation

import (
	"fmt"
	"strings"
	"sync"

	"todo-list/internal/config"
	"todo-list/internal/domain"

	playground "github.com/go-playground/validator/v10"
)

var (
	engineOnce sync.Once
	engine     *playground.Validate
)

// sharedEngine returns the process-wide validator engine. The engine caches
// struct metadata, so a single instance is reused.
func sharedEngine() *playground.Validate {
	engineOnce.Do(func() {
		engine = playground.New(playground.WithRequiredStructEnabled())
	})
	return engine
}

// Validator provides common validation utilities
type Validator struct {
	engine *playground.Validate
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		engine: sharedEngine(),
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		engine: sharedEngine(),
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return v.engine.Var(strings.TrimSpace(s), "required") == nil
}

// IsValidStringLength checks if a string length is within the specified range.
// Length is counted in characters, not bytes.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	tag := fmt.Sprintf("min=%d,max=%d", min, max)
	return v.engine.Var(strings.TrimSpace(s), tag) == nil
}

// IsValidTaskNameLength checks a task name against the configured limits.
// A maximum of zero means unlimited.
func (v *Validator) IsValidTaskNameLength(name string) bool {
	max := v.TaskNameMaxLength()
	if max <= 0 {
		return v.engine.Var(strings.TrimSpace(name), fmt.Sprintf("min=%d", v.TaskNameMinLength())) == nil
	}
	return v.IsValidStringLength(name, v.TaskNameMinLength(), max)
}

// IsValidDescriptionLength checks a description against the configured maximum.
// A maximum of zero means unlimited.
func (v *Validator) IsValidDescriptionLength(description string) bool {
	max := v.DescriptionMaxLength()
	if max <= 0 {
		return true
	}
	return v.engine.Var(description, fmt.Sprintf("max=%d", max)) == nil
}

// IsValidStatus checks that status is exactly one of the persisted values
func (v *Validator) IsValidStatus(status domain.Status) bool {
	return v.engine.Var(string(status), statusTag()) == nil
}

// IsValidTaskID checks that an id is present
func (v *Validator) IsValidTaskID(id string) bool {
	return v.IsNonEmptyString(id)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskNameMinLength returns configured minimum task name length or default
func (v *Validator) TaskNameMinLength() int {
	if v.config != nil && v.config.Validation.TaskNameMinLength > 0 {
		return v.config.Validation.TaskNameMinLength
	}
	return 1 // Default minimum
}

// TaskNameMaxLength returns the configured maximum task name length, 0 when unlimited
func (v *Validator) TaskNameMaxLength() int {
	if v.config != nil && v.config.Validation.TaskNameMaxLength > 0 {
		return v.config.Validation.TaskNameMaxLength
	}
	return 0
}

// DescriptionMaxLength returns configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 0
}

func statusTag() string {
	values := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		values = append(values, string(s))
	}
	return "oneof=" + strings.Join(values, " ")
}
