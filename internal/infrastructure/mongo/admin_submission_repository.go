package mongo

import (
	"context"

	admindomain "github.com/sngm3741/smartform-services/api/internal/admin/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminSubmissionRepository reads stored submissions for analytics and
// export.
type AdminSubmissionRepository struct {
	submissions *mongo.Collection
}

// NewAdminSubmissionRepository binds the submission collection for admin use.
func NewAdminSubmissionRepository(db *mongo.Database, submissionCollection string) *AdminSubmissionRepository {
	return &AdminSubmissionRepository{submissions: db.Collection(submissionCollection)}
}

// CountByForm counts all submissions stored against a form.
func (r *AdminSubmissionRepository) CountByForm(ctx context.Context, formID string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return 0, err
	}
	return r.submissions.CountDocuments(ctx, bson.M{"formId": objectID})
}

// FindRecentByForm returns the newest submissions first, up to limit.
func (r *AdminSubmissionRepository) FindRecentByForm(ctx context.Context, formID string, limit int) ([]admindomain.SubmissionRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	return r.find(ctx, bson.M{"formId": objectID}, opts)
}

// FindAllByForm returns every submission of a form in stored order.
func (r *AdminSubmissionRepository) FindAllByForm(ctx context.Context, formID string) ([]admindomain.SubmissionRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(formID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"formId": objectID}, nil)
}

func (r *AdminSubmissionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]admindomain.SubmissionRecord, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.submissions.Find(ctx, filter, opts)
	} else {
		cursor, err = r.submissions.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]admindomain.SubmissionRecord, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, admindomain.SubmissionRecord{
			ID:        doc.ID.Hex(),
			Data:      map[string]any(doc.Data),
			FileLinks: doc.FileLinks,
			UserAgent: doc.UserAgent,
			IPAddress: doc.IPAddress,
			CreatedAt: doc.CreatedAt,
		})
	}
	return records, cursor.Err()
}

// optionsFindNewestFirst sorts any collection by creation time descending.
func optionsFindNewestFirst() *options.FindOptions {
	opt := options.Find()
	opt.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return opt
}
