package mongo

import (
	"context"
	"time"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmissionRepository persists accepted submissions for the public context.
type SubmissionRepository struct {
	submissions *mongo.Collection
}

// NewSubmissionRepository binds the submission collection.
func NewSubmissionRepository(db *mongo.Database, submissionCollection string) *SubmissionRepository {
	return &SubmissionRepository{submissions: db.Collection(submissionCollection)}
}

// Create commits one submission in a single insert, assigning identity and
// the server-side commit timestamp back onto the record.
func (r *SubmissionRepository) Create(ctx context.Context, sub *domain.Submission) (string, error) {
	formID, err := primitive.ObjectIDFromHex(sub.FormID)
	if err != nil {
		return "", err
	}

	doc := SubmissionDocument{
		ID:        primitive.NewObjectID(),
		FormID:    formID,
		Data:      bson.M(sub.Data),
		FileLinks: sub.FileLinks,
		UserAgent: sub.UserAgent,
		IPAddress: sub.IPAddress,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.submissions.InsertOne(ctx, doc); err != nil {
		return "", err
	}

	sub.ID = doc.ID.Hex()
	sub.CreatedAt = doc.CreatedAt
	return sub.ID, nil
}
