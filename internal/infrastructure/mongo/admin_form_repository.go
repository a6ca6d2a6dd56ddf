package mongo

import (
	"context"
	"strings"
	"time"

	admindomain "github.com/sngm3741/smartform-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminFormRepository handles form writes and owner-scoped reads for the
// admin context.
type AdminFormRepository struct {
	forms *mongo.Collection
}

// NewAdminFormRepository binds the form collection for admin use.
func NewAdminFormRepository(db *mongo.Database, formCollection string) *AdminFormRepository {
	return &AdminFormRepository{forms: db.Collection(formCollection)}
}

// Create inserts a new form and reflects the assigned identity back onto the
// aggregate. Forms are never updated afterwards.
func (r *AdminFormRepository) Create(ctx context.Context, form *admindomain.Form) error {
	createdAt := form.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	doc := FormDocument{
		ID:          primitive.NewObjectID(),
		Title:       form.Title,
		Description: form.Description,
		Fields:      mapFieldDocuments(form.Fields),
		SheetTab:    form.SheetTab,
		Slug:        form.Slug,
		OwnerUID:    form.OwnerUID,
		CreatedAt:   createdAt,
	}

	if _, err := r.forms.InsertOne(ctx, doc); err != nil {
		return err
	}

	form.ID = doc.ID.Hex()
	form.CreatedAt = doc.CreatedAt
	return nil
}

// FindByOwner lists a user's forms, newest first.
func (r *AdminFormRepository) FindByOwner(ctx context.Context, ownerUID string) ([]admindomain.Form, error) {
	opts := optionsFindNewestFirst()
	cursor, err := r.forms.Find(ctx, bson.M{"ownerUid": strings.TrimSpace(ownerUID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := make([]admindomain.Form, 0)
	for cursor.Next(ctx) {
		var doc FormDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		forms = append(forms, mapAdminFormDocument(doc))
	}
	return forms, cursor.Err()
}

// FindBySlug resolves a slug for admin analytics/export. Unknown slugs
// surface mongo.ErrNoDocuments for the handler to map.
func (r *AdminFormRepository) FindBySlug(ctx context.Context, slug string) (*admindomain.Form, error) {
	var doc FormDocument
	if err := r.forms.FindOne(ctx, bson.M{"shareSlug": strings.TrimSpace(slug)}).Decode(&doc); err != nil {
		return nil, err
	}
	form := mapAdminFormDocument(doc)
	return &form, nil
}

// mapAdminFormDocument restores the admin aggregate from its document.
func mapAdminFormDocument(doc FormDocument) admindomain.Form {
	fields := make(admindomain.FieldList, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		options := make([]admindomain.FieldOption, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, admindomain.FieldOption{Label: opt.Label, Value: opt.Value})
		}
		fields = append(fields, admindomain.FieldDefinition{
			ID:          field.ID,
			Type:        admindomain.FieldType(field.Type),
			Label:       field.Label,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			HelperText:  field.HelperText,
			Options:     options,
		})
	}

	return admindomain.Form{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Fields:      fields,
		SheetTab:    doc.SheetTab,
		Slug:        doc.Slug,
		OwnerUID:    doc.OwnerUID,
		CreatedAt:   doc.CreatedAt,
	}
}

// mapFieldDocuments converts the validated field list for storage.
func mapFieldDocuments(fields admindomain.FieldList) []FieldDocument {
	docs := make([]FieldDocument, 0, len(fields))
	for _, field := range fields {
		options := make([]FieldOptionDocument, 0, len(field.Options))
		for _, opt := range field.Options {
			options = append(options, FieldOptionDocument{Label: opt.Label, Value: opt.Value})
		}
		docs = append(docs, FieldDocument{
			ID:          field.ID,
			Type:        field.Type.String(),
			Label:       field.Label,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			HelperText:  field.HelperText,
			Options:     options,
		})
	}
	return docs
}
