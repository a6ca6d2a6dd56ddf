package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
)

// submissionService implements the ingestion pipeline: normalize happened at
// the boundary, so here it is find form, validate, upload attachments, commit
// and finally mirror. Every external call runs exactly once, sequentially.
type submissionService struct {
	logger      *log.Logger
	forms       FormRepository
	submissions SubmissionRepository
	blobs       BlobStore
	sink        TabularSink
	failures    MirrorFailureLog
}

// NewSubmissionService wires the pipeline's collaborators.
func NewSubmissionService(logger *log.Logger, forms FormRepository, submissions SubmissionRepository, blobs BlobStore, sink TabularSink, failures MirrorFailureLog) SubmissionService {
	return &submissionService{
		logger:      logger,
		forms:       forms,
		submissions: submissions,
		blobs:       blobs,
		sink:        sink,
		failures:    failures,
	}
}

func (s *submissionService) Submit(ctx context.Context, cmd SubmitCommand) (string, error) {
	form, err := s.forms.FindBySlug(ctx, cmd.Slug)
	if err != nil {
		return "", err
	}

	if err := form.ValidateSubmission(cmd.Payload.Values, cmd.Payload.AttachmentKeys()); err != nil {
		return "", err
	}

	fileLinks := make(map[string]string, len(cmd.Payload.Attachments))
	for _, att := range cmd.Payload.Attachments {
		link, err := s.blobs.Upload(ctx, att)
		if err != nil {
			// Earlier uploads are not rolled back; the submission itself is
			// aborted so no record ever references a partial set.
			return "", fmt.Errorf("%w: field %s: %v", domain.ErrUploadFailed, att.FieldID, err)
		}
		fileLinks[att.FieldID] = link
	}

	sub := domain.NewSubmission(form.ID, cmd.Payload.Values, fileLinks, cmd.Meta)
	id, err := s.submissions.Create(ctx, sub)
	if err != nil {
		return "", err
	}

	s.mirrorBestEffort(ctx, form, sub)
	return id, nil
}

// mirrorBestEffort appends the submission row to the form's sheet tab. The
// submission is already durably committed: any sink error is logged and
// recorded, never returned, and the committed record is never rolled back.
func (s *submissionService) mirrorBestEffort(ctx context.Context, form *domain.Form, sub *domain.Submission) {
	row := domain.MirrorRow(form, sub)
	err := s.sink.AppendRow(ctx, form.SheetTab, row)
	if err == nil {
		return
	}

	if s.logger != nil {
		s.logger.Printf("sheet mirror failed for submission %s (form %s, tab %q): %v", sub.ID, form.ID, form.SheetTab, err)
	}
	if s.failures != nil {
		s.failures.Record(ctx, MirrorFailure{
			FormID:       form.ID,
			SubmissionID: sub.ID,
			SheetTab:     form.SheetTab,
			Row:          row,
			Err:          err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
	}
}
