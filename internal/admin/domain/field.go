package domain

import (
	"fmt"
	"strings"
)

var allowedFieldTypes = []FieldType{
	FieldText, FieldEmail, FieldPhone, FieldNumber, FieldDate,
	FieldFile, FieldDropdown, FieldCheckbox, FieldRadio,
	FieldSignature, FieldTextarea,
}

// FieldType enumerates the input kinds a form field may declare.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldEmail     FieldType = "email"
	FieldPhone     FieldType = "phone"
	FieldNumber    FieldType = "number"
	FieldDate      FieldType = "date"
	FieldFile      FieldType = "file"
	FieldDropdown  FieldType = "dropdown"
	FieldCheckbox  FieldType = "checkbox"
	FieldRadio     FieldType = "radio"
	FieldSignature FieldType = "signature"
	FieldTextarea  FieldType = "textarea"
)

func NewFieldType(value string) (FieldType, error) {
	trimmed := FieldType(strings.TrimSpace(value))
	if trimmed == "" {
		return "", fmt.Errorf("field type is required")
	}
	for _, allowed := range allowedFieldTypes {
		if allowed == trimmed {
			return trimmed, nil
		}
	}
	return "", fmt.Errorf("invalid field type: %s", trimmed)
}

func (t FieldType) String() string {
	return string(t)
}

// NeedsOptions reports whether the type renders from a choice list.
func (t FieldType) NeedsOptions() bool {
	switch t {
	case FieldDropdown, FieldCheckbox, FieldRadio:
		return true
	}
	return false
}

// FieldOption is one selectable (label, value) choice of an option field.
type FieldOption struct {
	Label string
	Value string
}

func NewFieldOption(label, value string) (FieldOption, error) {
	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	if value == "" {
		value = label
	}
	if label == "" && value == "" {
		return FieldOption{}, fmt.Errorf("option label is required")
	}
	if label == "" {
		label = value
	}
	return FieldOption{Label: label, Value: value}, nil
}

// FieldDefinition is one named, typed input slot within a form.
type FieldDefinition struct {
	ID          string
	Type        FieldType
	Label       string
	Required    bool
	Placeholder string
	HelperText  string
	Options     []FieldOption
}

// DisplayName is the name used when reporting the field to end users.
func (d FieldDefinition) DisplayName() string {
	if strings.TrimSpace(d.Label) != "" {
		return d.Label
	}
	return d.ID
}

// FieldList is the ordered schema of a form. Order is significant: it fixes
// both the sheet column order and the CSV export order.
type FieldList []FieldDefinition

// NewFieldList validates and assembles the field definitions of a new form.
func NewFieldList(fields []FieldDefinition) (FieldList, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields must not be empty")
	}
	result := make(FieldList, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field.ID = strings.TrimSpace(field.ID)
		if field.ID == "" {
			return nil, fmt.Errorf("field id is required")
		}
		if _, ok := seen[field.ID]; ok {
			return nil, fmt.Errorf("duplicate field id: %s", field.ID)
		}
		fieldType, err := NewFieldType(field.Type.String())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.ID, err)
		}
		field.Type = fieldType
		if fieldType.NeedsOptions() && len(field.Options) == 0 {
			return nil, fmt.Errorf("field %s: %s fields need at least one option", field.ID, fieldType)
		}
		field.Label = strings.TrimSpace(field.Label)
		seen[field.ID] = struct{}{}
		result = append(result, field)
	}
	return result, nil
}

// HeaderRow builds the sheet header: "Timestamp" then one cell per field.
func (l FieldList) HeaderRow() []string {
	headers := make([]string, 0, len(l)+1)
	headers = append(headers, "Timestamp")
	for _, field := range l {
		headers = append(headers, field.DisplayName())
	}
	return headers
}

// IDs returns the field identifiers in declared order.
func (l FieldList) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, field := range l {
		ids = append(ids, field.ID)
	}
	return ids
}
