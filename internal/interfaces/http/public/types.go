package public

import (
	"time"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
)

type formFieldOptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type formFieldResponse struct {
	ID          string                    `json:"id"`
	Type        string                    `json:"type"`
	Label       string                    `json:"label"`
	Required    bool                      `json:"required"`
	Placeholder string                    `json:"placeholder,omitempty"`
	HelperText  string                    `json:"helperText,omitempty"`
	Options     []formFieldOptionResponse `json:"options,omitempty"`
}

type formResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Fields      []formFieldResponse `json:"fields"`
	ShareSlug   string              `json:"shareSlug"`
	ShareURL    string              `json:"shareUrl"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type submitResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submissionId"`
}

func buildFormResponse(form *domain.Form, shareURL string) formResponse {
	fields := make([]formFieldResponse, 0, len(form.Fields))
	for _, field := range form.Fields {
		options := make([]formFieldOptionResponse, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, formFieldOptionResponse{Label: opt.Label, Value: opt.Value})
		}
		fields = append(fields, formFieldResponse{
			ID:          field.ID,
			Type:        field.Type,
			Label:       field.Label,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			HelperText:  field.HelperText,
			Options:     options,
		})
	}
	return formResponse{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Fields:      fields,
		ShareSlug:   form.Slug,
		ShareURL:    shareURL,
		CreatedAt:   form.CreatedAt,
	}
}
