package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrFormNotFound signals that a share slug resolves to no published form.
var ErrFormNotFound = errors.New("form not found")

// ErrUploadFailed marks attachment upload errors so the interface layer can
// distinguish them from validation failures.
var ErrUploadFailed = errors.New("attachment upload failed")

// Form is the public view of a published schema, addressed by slug.
type Form struct {
	ID          string
	Title       string
	Description string
	Fields      []FieldDefinition
	SheetTab    string
	Slug        string
	CreatedAt   time.Time
}

// FieldDefinition is one declared input slot of a published form.
type FieldDefinition struct {
	ID          string
	Type        string
	Label       string
	Required    bool
	Placeholder string
	HelperText  string
	Options     []FieldOption
}

// FieldOption is one selectable choice of a dropdown/checkbox/radio field.
type FieldOption struct {
	Label string
	Value string
}

// DisplayName is the label shown to submitters, falling back to the id.
func (d FieldDefinition) DisplayName() string {
	if strings.TrimSpace(d.Label) != "" {
		return d.Label
	}
	return d.ID
}

// Field looks a definition up by identifier.
func (f *Form) Field(id string) (FieldDefinition, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// RequiredFieldError reports the first required field missing from a
// submission. Validation is all-or-nothing: the first miss aborts the whole
// submission before any upload or persistence happens.
type RequiredFieldError struct {
	FieldID string
	Label   string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.DisplayName())
}

// DisplayName returns the field label, or the id when no label is set.
func (e *RequiredFieldError) DisplayName() string {
	if strings.TrimSpace(e.Label) != "" {
		return e.Label
	}
	return e.FieldID
}

// ValidateSubmission checks every required field in declared order against the
// canonical attribute map. File-type fields are satisfied by a pending
// attachment under their id, since uploads never enter the attribute map.
//
// Keys not declared on the form are not rejected here: they pass through into
// the stored attribute map unchanged and are simply never mirrored. Type and
// format checks (email shape, numeric range) are deliberately a client
// concern and not enforced server-side.
func (f *Form) ValidateSubmission(values map[string]any, attachments map[string]struct{}) error {
	for _, field := range f.Fields {
		if !field.Required {
			continue
		}
		if field.Type == "file" {
			if _, ok := attachments[field.ID]; ok {
				continue
			}
			return &RequiredFieldError{FieldID: field.ID, Label: field.Label}
		}
		if isEmptyValue(values[field.ID]) {
			return &RequiredFieldError{FieldID: field.ID, Label: field.Label}
		}
	}
	return nil
}

// isEmptyValue mirrors the falsiness rules submissions were historically
// validated with: nil, empty strings, empty collections, false and zero
// numbers all count as absent.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
