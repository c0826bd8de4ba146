package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPatch_Apply(t *testing.T) {
	original := Task{ID: "1", Name: "Buy milk", Status: StatusIncomplete, Description: "2 litres"}

	tests := []struct {
		name     string
		patch    TaskPatch
		expected Task
	}{
		{
			name:     "empty patch changes nothing",
			patch:    TaskPatch{},
			expected: original,
		},
		{
			name:     "status only",
			patch:    StatusPatch(StatusComplete),
			expected: Task{ID: "1", Name: "Buy milk", Status: StatusComplete, Description: "2 litres"},
		},
		{
			name:     "name only",
			patch:    TaskPatch{Name: StringPtr("Buy oat milk")},
			expected: Task{ID: "1", Name: "Buy oat milk", Status: StatusIncomplete, Description: "2 litres"},
		},
		{
			name:     "explicitly cleared description",
			patch:    TaskPatch{Description: StringPtr("")},
			expected: Task{ID: "1", Name: "Buy milk", Status: StatusIncomplete, Description: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.Apply(original))
		})
	}
}

func TestTaskPatch_JSONPresence(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantName        bool
		wantStatus      bool
		wantDescription bool
	}{
		{"absent description", `{"status":"Complete"}`, false, true, false},
		{"empty description is present", `{"description":""}`, false, false, true},
		{"null description is absent", `{"description":null}`, false, false, false},
		{"all fields", `{"name":"a","status":"Incomplete","description":"d"}`, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch TaskPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			assert.Equal(t, tt.wantName, patch.Name != nil)
			assert.Equal(t, tt.wantStatus, patch.Status != nil)
			assert.Equal(t, tt.wantDescription, patch.Description != nil)
		})
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, StatusPatch(StatusComplete).IsEmpty())
}
