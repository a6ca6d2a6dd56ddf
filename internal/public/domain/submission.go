package domain

import (
	"fmt"
	"strings"
	"time"
)

// Submission is one accepted, persisted instance of data collected against a
// form. Immutable after commit; CreatedAt is assigned by the store.
type Submission struct {
	ID        string
	FormID    string
	Data      map[string]any
	FileLinks map[string]string
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}

// RequestMeta carries optional request context captured alongside a
// submission.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// NewSubmission assembles the record committed to the store. File links map
// field ids to the durable URLs returned by the blob store.
func NewSubmission(formID string, values map[string]any, fileLinks map[string]string, meta RequestMeta) *Submission {
	if values == nil {
		values = map[string]any{}
	}
	return &Submission{
		FormID:    formID,
		Data:      values,
		FileLinks: fileLinks,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
	}
}

// MirrorRow renders the sheet row for a committed submission: the commit
// timestamp in ISO-8601 first, then one cell per field in declared order.
// List values are comma-joined, file fields render their uploaded link, and
// fields with no entry stay empty. Undeclared attribute keys never appear.
func MirrorRow(form *Form, sub *Submission) []string {
	row := make([]string, 0, len(form.Fields)+1)
	row = append(row, sub.CreatedAt.UTC().Format(time.RFC3339))
	for _, field := range form.Fields {
		if link, ok := sub.FileLinks[field.ID]; ok {
			row = append(row, link)
			continue
		}
		row = append(row, CellValue(sub.Data[field.ID]))
	}
	return row
}

// CellValue stringifies one attribute value for a tabular cell.
func CellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, CellValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
