package application

import (
	"context"
	"io"

	admindomain "github.com/sngm3741/smartform-services/api/internal/admin/domain"
)

// FormRepository exposes admin operations on forms.
type FormRepository interface {
	Create(ctx context.Context, form *admindomain.Form) error
	FindByOwner(ctx context.Context, ownerUID string) ([]admindomain.Form, error)
	FindBySlug(ctx context.Context, slug string) (*admindomain.Form, error)
}

// SubmissionRepository exposes admin reads over stored submissions.
type SubmissionRepository interface {
	CountByForm(ctx context.Context, formID string) (int64, error)
	FindRecentByForm(ctx context.Context, formID string, limit int) ([]admindomain.SubmissionRecord, error)
	FindAllByForm(ctx context.Context, formID string) ([]admindomain.SubmissionRecord, error)
}

// SheetProvisioner creates the tab (with header row) a new form mirrors into.
type SheetProvisioner interface {
	CreateTab(ctx context.Context, title string, headers []string) (string, error)
}

// FormService describes admin form use-cases.
type FormService interface {
	Create(ctx context.Context, ownerUID string, cmd CreateFormCommand) (*admindomain.Form, error)
	List(ctx context.Context, ownerUID string) ([]admindomain.Form, error)
	Analytics(ctx context.Context, slug string, recentLimit int) (*FormAnalytics, error)
	WriteCSV(ctx context.Context, slug string, w io.Writer) error
}

// CreateFormCommand contains inputs for publishing a new form.
type CreateFormCommand struct {
	Title       string
	Description string
	Fields      []FieldCommand
}

// FieldCommand is one field definition as supplied by the form author.
type FieldCommand struct {
	ID          string
	Type        string
	Label       string
	Required    bool
	Placeholder string
	HelperText  string
	Options     []FieldOptionCommand
}

// FieldOptionCommand is one choice of an option field.
type FieldOptionCommand struct {
	Label string
	Value string
}

// FormAnalytics summarizes collected submissions for one form.
type FormAnalytics struct {
	Count  int64
	Recent []admindomain.SubmissionRecord
}
