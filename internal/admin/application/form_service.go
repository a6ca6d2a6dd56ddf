package application

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	admindomain "github.com/sngm3741/smartform-services/api/internal/admin/domain"
)

type formService struct {
	forms       FormRepository
	submissions SubmissionRepository
	sheets      SheetProvisioner
}

// NewFormService constructs the admin form service.
func NewFormService(forms FormRepository, submissions SubmissionRepository, sheets SheetProvisioner) FormService {
	return &formService{forms: forms, submissions: submissions, sheets: sheets}
}

// Create validates the schema, provisions the sheet tab with its header row
// and persists the form. Tab provisioning failure aborts the creation, so a
// stored form always has a tab to mirror into.
func (s *formService) Create(ctx context.Context, ownerUID string, cmd CreateFormCommand) (*admindomain.Form, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}

	fields, err := buildFieldsFromCommand(cmd.Fields)
	if err != nil {
		return nil, err
	}

	tab, err := s.sheets.CreateTab(ctx, title, fields.HeaderRow())
	if err != nil {
		return nil, fmt.Errorf("provision sheet tab: %w", err)
	}

	now := time.Now().UTC()
	form := &admindomain.Form{
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Fields:      fields,
		SheetTab:    tab,
		Slug:        admindomain.NewSlug(title, now),
		OwnerUID:    ownerUID,
		CreatedAt:   now,
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *formService) List(ctx context.Context, ownerUID string) ([]admindomain.Form, error) {
	return s.forms.FindByOwner(ctx, ownerUID)
}

// Analytics returns the submission count and the most recent records. The
// recent window defaults to five entries and is capped at fifty.
func (s *formService) Analytics(ctx context.Context, slug string, recentLimit int) (*FormAnalytics, error) {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	if recentLimit > 50 {
		recentLimit = 50
	}

	form, err := s.forms.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	count, err := s.submissions.CountByForm(ctx, form.ID)
	if err != nil {
		return nil, err
	}
	recent, err := s.submissions.FindRecentByForm(ctx, form.ID, recentLimit)
	if err != nil {
		return nil, err
	}
	return &FormAnalytics{Count: count, Recent: recent}, nil
}

// WriteCSV streams every stored submission as CSV: a header of "timestamp"
// plus the field ids, then one row per submission in stored order.
func (s *formService) WriteCSV(ctx context.Context, slug string, w io.Writer) error {
	form, err := s.forms.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	records, err := s.submissions.FindAllByForm(ctx, form.ID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	fieldIDs := form.Fields.IDs()
	header := append([]string{"timestamp"}, fieldIDs...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		row := make([]string, 0, len(fieldIDs)+1)
		if record.CreatedAt.IsZero() {
			row = append(row, "")
		} else {
			row = append(row, record.CreatedAt.UTC().Format(time.RFC3339))
		}
		for _, id := range fieldIDs {
			if link, ok := record.FileLinks[id]; ok {
				row = append(row, link)
				continue
			}
			row = append(row, cellValue(record.Data[id]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// cellValue stringifies one stored attribute value for a CSV cell.
func cellValue(value any) string {
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
			parts = append(parts, cellValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func buildFieldsFromCommand(inputs []FieldCommand) (admindomain.FieldList, error) {
	fields := make([]admindomain.FieldDefinition, 0, len(inputs))
	for _, input := range inputs {
		options := make([]admindomain.FieldOption, 0, len(input.Options))
		for _, opt := range input.Options {
			option, err := admindomain.NewFieldOption(opt.Label, opt.Value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", input.ID, err)
			}
			options = append(options, option)
		}
		fields = append(fields, admindomain.FieldDefinition{
			ID:          input.ID,
			Type:        admindomain.FieldType(input.Type),
			Label:       input.Label,
			Required:    input.Required,
			Placeholder: strings.TrimSpace(input.Placeholder),
			HelperText:  strings.TrimSpace(input.HelperText),
			Options:     options,
		})
	}
	return admindomain.NewFieldList(fields)
}
