package mongo

import (
	"context"
	"errors"
	"strings"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FormRepository serves the public context: slug lookups only.
type FormRepository struct {
	forms *mongo.Collection
}

// NewFormRepository binds the form collection for public reads.
func NewFormRepository(db *mongo.Database, formCollection string) *FormRepository {
	return &FormRepository{forms: db.Collection(formCollection)}
}

// FindBySlug resolves a share slug to its published form. A missing slug
// maps to domain.ErrFormNotFound so callers never see driver sentinels.
func (r *FormRepository) FindBySlug(ctx context.Context, slug string) (*domain.Form, error) {
	slug = strings.TrimSpace(slug)

	var doc FormDocument
	err := r.forms.FindOne(ctx, bson.M{"shareSlug": slug}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}

	form := mapPublicFormDocument(doc)
	return &form, nil
}

// mapPublicFormDocument converts a form document to the public domain view,
// preserving declared field order.
func mapPublicFormDocument(doc FormDocument) domain.Form {
	fields := make([]domain.FieldDefinition, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		options := make([]domain.FieldOption, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, domain.FieldOption{Label: opt.Label, Value: opt.Value})
		}
		fields = append(fields, domain.FieldDefinition{
			ID:          field.ID,
			Type:        field.Type,
			Label:       field.Label,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			HelperText:  field.HelperText,
			Options:     options,
		})
	}

	return domain.Form{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Fields:      fields,
		SheetTab:    doc.SheetTab,
		Slug:        doc.Slug,
		CreatedAt:   doc.CreatedAt,
	}
}
