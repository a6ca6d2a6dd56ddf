package domain

import (
	"fmt"
	"strings"
	"time"
)

// Form is the admin-side aggregate: a user-authored schema plus the sheet tab
// and slug it was published with. Forms are created once and never edited.
type Form struct {
	ID          string
	Title       string
	Description string
	Fields      FieldList
	SheetTab    string
	Slug        string
	OwnerUID    string
	CreatedAt   time.Time
}

// HeaderRow returns the header written to the mirrored sheet tab: a timestamp
// column followed by one column per field, labelled by label or id.
func (f *Form) HeaderRow() []string {
	return f.Fields.HeaderRow()
}

// NewSlug derives the immutable share slug from the form title.
func NewSlug(title string, now time.Time) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	slug := strings.ReplaceAll(lowered, " ", "-")
	return fmt.Sprintf("%s-%d", slug, now.Unix())
}

// SubmissionRecord is the admin read model of one stored submission, used by
// analytics and CSV export.
type SubmissionRecord struct {
	ID        string
	Data      map[string]any
	FileLinks map[string]string
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}
