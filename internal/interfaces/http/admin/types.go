package admin

import (
	"time"

	adminapp "github.com/sngm3741/smartform-services/api/internal/admin/application"
	admindomain "github.com/sngm3741/smartform-services/api/internal/admin/domain"
)

type adminFieldOptionRequest struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type adminFieldRequest struct {
	ID          string                    `json:"id"`
	Type        string                    `json:"type"`
	Label       string                    `json:"label"`
	Required    bool                      `json:"required"`
	Placeholder string                    `json:"placeholder"`
	HelperText  string                    `json:"helperText"`
	Options     []adminFieldOptionRequest `json:"options"`
}

type adminFormCreateRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Fields      []adminFieldRequest `json:"fields"`
}

type adminFieldOptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type adminFieldResponse struct {
	ID          string                     `json:"id"`
	Type        string                     `json:"type"`
	Label       string                     `json:"label"`
	Required    bool                       `json:"required"`
	Placeholder string                     `json:"placeholder,omitempty"`
	HelperText  string                     `json:"helperText,omitempty"`
	Options     []adminFieldOptionResponse `json:"options,omitempty"`
}

type adminFormResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Fields      []adminFieldResponse `json:"fields"`
	SheetName   string               `json:"sheetName"`
	ShareSlug   string               `json:"shareSlug"`
	ShareURL    string               `json:"shareUrl"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type adminSubmissionResponse struct {
	ID        string            `json:"id"`
	Data      map[string]any    `json:"data"`
	FileLinks map[string]string `json:"fileLinks,omitempty"`
	UserAgent string            `json:"userAgent,omitempty"`
	IPAddress string            `json:"ipAddress,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

type adminAnalyticsResponse struct {
	SubmissionCount int64                     `json:"submissionCount"`
	Recent          []adminSubmissionResponse `json:"recent"`
}

func buildCreateFormCommand(req adminFormCreateRequest) adminapp.CreateFormCommand {
	fields := make([]adminapp.FieldCommand, 0, len(req.Fields))
	for _, field := range req.Fields {
		options := make([]adminapp.FieldOptionCommand, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, adminapp.FieldOptionCommand{Label: opt.Label, Value: opt.Value})
		}
		fields = append(fields, adminapp.FieldCommand{
			ID:          field.ID,
			Type:        field.Type,
			Label:       field.Label,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			HelperText:  field.HelperText,
			Options:     options,
		})
	}
	return adminapp.CreateFormCommand{
		Title:       req.Title,
		Description: req.Description,
		Fields:      fields,
	}
}

func adminFormDomainToResponse(form admindomain.Form, shareURL string) adminFormResponse {
	fields := make([]adminFieldResponse, 0, len(form.Fields))
	for _, field := range form.Fields {
		options := make([]adminFieldOptionResponse, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, adminFieldOptionResponse{Label: opt.Label, Value: opt.Value})
		}
		fields = append(fields, adminFieldResponse{
			ID:          field.ID,
			Type:        field.Type.String(),
			Label:       field.Label,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			HelperText:  field.HelperText,
			Options:     options,
		})
	}
	return adminFormResponse{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Fields:      fields,
		SheetName:   form.SheetTab,
		ShareSlug:   form.Slug,
		ShareURL:    shareURL,
		CreatedAt:   form.CreatedAt,
	}
}

func adminSubmissionToResponse(record admindomain.SubmissionRecord) adminSubmissionResponse {
	return adminSubmissionResponse{
		ID:        record.ID,
		Data:      record.Data,
		FileLinks: record.FileLinks,
		UserAgent: record.UserAgent,
		IPAddress: record.IPAddress,
		CreatedAt: record.CreatedAt,
	}
}
