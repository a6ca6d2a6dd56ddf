package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldOptionDocument is one (label, value) choice of an option field.
type FieldOptionDocument struct {
	Label string `bson:"label"`
	Value string `bson:"value"`
}

// FieldDocument stores one field definition inside a form document. The
// slice order in the parent document is the declared field order.
type FieldDocument struct {
	ID          string                `bson:"id"`
	Type        string                `bson:"type"`
	Label       string                `bson:"label,omitempty"`
	Required    bool                  `bson:"required,omitempty"`
	Placeholder string                `bson:"placeholder,omitempty"`
	HelperText  string                `bson:"helperText,omitempty"`
	Options     []FieldOptionDocument `bson:"options,omitempty"`
}

// FormDocument is the MongoDB schema of a published form.
type FormDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Fields      []FieldDocument    `bson:"fields"`
	SheetTab    string             `bson:"sheetName"`
	Slug        string             `bson:"shareSlug"`
	OwnerUID    string             `bson:"ownerUid,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// SubmissionDocument is the MongoDB schema of one accepted submission. Data
// holds the canonical attribute map keyed by field id; FileLinks maps file
// fields to their uploaded URLs.
type SubmissionDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	FormID    primitive.ObjectID `bson:"formId"`
	Data      bson.M             `bson:"data"`
	FileLinks map[string]string  `bson:"fileLinks,omitempty"`
	UserAgent string             `bson:"userAgent,omitempty"`
	IPAddress string             `bson:"ipAddress,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}
