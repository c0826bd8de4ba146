package domain

// TaskPatch is a partial update. A nil field is absent and leaves the
// stored value alone; a non-nil field replaces it, so a pointer to ""
// clears the description.
type TaskPatch struct {
	Name        *string `json:"name,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch supplies no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.Status == nil && p.Description == nil
}

// Apply returns a copy of t with the supplied fields merged in.
// The id is never changed.
func (p TaskPatch) Apply(t Task) Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	return t
}

// StatusPatch builds a patch that only changes the status.
func StatusPatch(status Status) TaskPatch {
	return TaskPatch{Status: &status}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// StatusPtr returns a pointer to s.
func StatusPtr(s Status) *Status {
	return &s
}
