package mongo

import (
	"context"
	"log"

	"github.com/sngm3741/smartform-services/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MirrorFailureLog persists swallowed sheet-append errors so operators can
// replay rows by hand. Recording failures must never affect the submission,
// so errors here are only logged.
type MirrorFailureLog struct {
	logger   *log.Logger
	failures *mongo.Collection
}

// NewMirrorFailureLog binds the failed-mirror collection.
func NewMirrorFailureLog(logger *log.Logger, db *mongo.Database, failureCollection string) *MirrorFailureLog {
	return &MirrorFailureLog{logger: logger, failures: db.Collection(failureCollection)}
}

// Record stores one mirror failure, best-effort.
func (l *MirrorFailureLog) Record(ctx context.Context, failure application.MirrorFailure) {
	doc := bson.M{
		"formId":       failure.FormID,
		"submissionId": failure.SubmissionID,
		"sheetName":    failure.SheetTab,
		"row":          failure.Row,
		"error":        failure.Err,
		"status":       "pending",
		"createdAt":    failure.OccurredAt,
	}
	if _, err := l.failures.InsertOne(ctx, doc); err != nil && l.logger != nil {
		l.logger.Printf("failed to record mirror failure for submission %s: %v", failure.SubmissionID, err)
	}
}
