package application

import (
	"context"
	"time"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
)

// FormRepository abstracts read access to published forms.
type FormRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Form, error)
}

// SubmissionRepository persists accepted submissions. Create assigns identity
// and the commit timestamp, and must succeed before a submission exists.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) (string, error)
}

// BlobStore uploads one attachment and returns its durable public URL.
type BlobStore interface {
	Upload(ctx context.Context, att domain.Attachment) (string, error)
}

// TabularSink appends one denormalized row to a sheet tab.
type TabularSink interface {
	AppendRow(ctx context.Context, tab string, row []string) error
}

// MirrorFailureLog records mirror errors for later inspection. Recording is
// itself best-effort and must never fail a submission.
type MirrorFailureLog interface {
	Record(ctx context.Context, failure MirrorFailure)
}

// MirrorFailure describes one swallowed sheet append error.
type MirrorFailure struct {
	FormID       string
	SubmissionID string
	SheetTab     string
	Row          []string
	Err          string
	OccurredAt   time.Time
}

// FormQueryService exposes public form reads.
type FormQueryService interface {
	BySlug(ctx context.Context, slug string) (*domain.Form, error)
}

// SubmissionService runs the ingestion pipeline for one submission.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitCommand) (string, error)
}

// SubmitCommand carries one normalized inbound submission.
type SubmitCommand struct {
	Slug    string
	Payload domain.Payload
	Meta    domain.RequestMeta
}

// NewFormQueryService constructs the public form read service.
func NewFormQueryService(repo FormRepository) FormQueryService {
	return &formQueryService{repo: repo}
}

type formQueryService struct {
	repo FormRepository
}

func (s *formQueryService) BySlug(ctx context.Context, slug string) (*domain.Form, error) {
	return s.repo.FindBySlug(ctx, slug)
}
