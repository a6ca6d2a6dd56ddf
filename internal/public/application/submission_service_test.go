package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/smartform-services/api/internal/public/domain"
)

type fakeFormRepo struct {
	form *domain.Form
	err  error
}

func (f *fakeFormRepo) FindBySlug(_ context.Context, slug string) (*domain.Form, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.form == nil || f.form.Slug != slug {
		return nil, domain.ErrFormNotFound
	}
	return f.form, nil
}

type fakeSubmissionRepo struct {
	created *domain.Submission
	err     error
	calls   int
}

func (f *fakeSubmissionRepo) Create(_ context.Context, sub *domain.Submission) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	sub.ID = "sub-1"
	sub.CreatedAt = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f.created = sub
	return sub.ID, nil
}

type fakeBlobStore struct {
	links map[string]string
	err   error
	calls []string
}

func (f *fakeBlobStore) Upload(_ context.Context, att domain.Attachment) (string, error) {
	f.calls = append(f.calls, att.FieldID)
	if f.err != nil {
		return "", f.err
	}
	return f.links[att.FieldID], nil
}

type fakeSink struct {
	err  error
	tab  string
	rows [][]string
}

func (f *fakeSink) AppendRow(_ context.Context, tab string, row []string) error {
	f.tab = tab
	f.rows = append(f.rows, row)
	return f.err
}

type fakeFailureLog struct {
	failures []MirrorFailure
}

func (f *fakeFailureLog) Record(_ context.Context, failure MirrorFailure) {
	f.failures = append(f.failures, failure)
}

func testForm() *domain.Form {
	return &domain.Form{
		ID:       "form-1",
		Title:    "Event Registration",
		SheetTab: "Event Registration-ab12cd34",
		Slug:     "event-registration-1700000000",
		Fields: []domain.FieldDefinition{
			{ID: "name", Type: "text", Label: "Full Name", Required: true},
			{ID: "resume", Type: "file", Label: "Resume"},
		},
	}
}

func newTestService(forms *fakeFormRepo, subs *fakeSubmissionRepo, blobs *fakeBlobStore, sink *fakeSink, failures *fakeFailureLog) SubmissionService {
	return NewSubmissionService(nil, forms, subs, blobs, sink, failures)
}

func TestSubmit(t *testing.T) {
	t.Run("commits and mirrors a valid submission", func(t *testing.T) {
		forms := &fakeFormRepo{form: testForm()}
		subs := &fakeSubmissionRepo{}
		blobs := &fakeBlobStore{links: map[string]string{"resume": "https://drive/resume"}}
		sink := &fakeSink{}
		failures := &fakeFailureLog{}
		svc := newTestService(forms, subs, blobs, sink, failures)

		id, err := svc.Submit(context.Background(), SubmitCommand{
			Slug: "event-registration-1700000000",
			Payload: domain.Payload{
				Values:      map[string]any{"name": "Aiko"},
				Attachments: []domain.Attachment{{FieldID: "resume", Filename: "cv.pdf"}},
			},
			Meta: domain.RequestMeta{UserAgent: "test/1.0", IPAddress: "192.0.2.1"},
		})

		require.NoError(t, err)
		assert.Equal(t, "sub-1", id)
		require.NotNil(t, subs.created)
		assert.Equal(t, "https://drive/resume", subs.created.FileLinks["resume"])
		assert.Equal(t, "test/1.0", subs.created.UserAgent)

		require.Len(t, sink.rows, 1)
		assert.Equal(t, "Event Registration-ab12cd34", sink.tab)
		assert.Equal(t, []string{"2026-08-30T12:00:00Z", "Aiko", "https://drive/resume"}, sink.rows[0])
		assert.Empty(t, failures.failures)
	})

	t.Run("unknown slug returns ErrFormNotFound", func(t *testing.T) {
		svc := newTestService(&fakeFormRepo{}, &fakeSubmissionRepo{}, &fakeBlobStore{}, &fakeSink{}, &fakeFailureLog{})

		_, err := svc.Submit(context.Background(), SubmitCommand{Slug: "nope"})

		assert.ErrorIs(t, err, domain.ErrFormNotFound)
	})

	t.Run("validation failure stops before upload and commit", func(t *testing.T) {
		subs := &fakeSubmissionRepo{}
		blobs := &fakeBlobStore{}
		svc := newTestService(&fakeFormRepo{form: testForm()}, subs, blobs, &fakeSink{}, &fakeFailureLog{})

		_, err := svc.Submit(context.Background(), SubmitCommand{
			Slug:    "event-registration-1700000000",
			Payload: domain.Payload{Values: map[string]any{}},
		})

		var required *domain.RequiredFieldError
		require.ErrorAs(t, err, &required)
		assert.Empty(t, blobs.calls)
		assert.Zero(t, subs.calls)
	})

	t.Run("upload failure aborts before commit", func(t *testing.T) {
		subs := &fakeSubmissionRepo{}
		blobs := &fakeBlobStore{err: errors.New("quota exceeded")}
		sink := &fakeSink{}
		svc := newTestService(&fakeFormRepo{form: testForm()}, subs, blobs, sink, &fakeFailureLog{})

		_, err := svc.Submit(context.Background(), SubmitCommand{
			Slug: "event-registration-1700000000",
			Payload: domain.Payload{
				Values:      map[string]any{"name": "Aiko"},
				Attachments: []domain.Attachment{{FieldID: "resume"}},
			},
		})

		assert.ErrorIs(t, err, domain.ErrUploadFailed)
		assert.Zero(t, subs.calls)
		assert.Empty(t, sink.rows)
	})

	t.Run("mirror failure does not fail the submission", func(t *testing.T) {
		subs := &fakeSubmissionRepo{}
		sink := &fakeSink{err: errors.New("tab deleted")}
		failures := &fakeFailureLog{}
		svc := newTestService(&fakeFormRepo{form: testForm()}, subs, &fakeBlobStore{}, sink, failures)

		id, err := svc.Submit(context.Background(), SubmitCommand{
			Slug:    "event-registration-1700000000",
			Payload: domain.Payload{Values: map[string]any{"name": "Ben"}},
		})

		require.NoError(t, err)
		assert.Equal(t, "sub-1", id)
		require.Len(t, failures.failures, 1)
		failure := failures.failures[0]
		assert.Equal(t, "form-1", failure.FormID)
		assert.Equal(t, "sub-1", failure.SubmissionID)
		assert.Equal(t, "Event Registration-ab12cd34", failure.SheetTab)
		assert.Equal(t, "tab deleted", failure.Err)
	})

	t.Run("store failure is returned and nothing is mirrored", func(t *testing.T) {
		subs := &fakeSubmissionRepo{err: errors.New("write concern")}
		sink := &fakeSink{}
		svc := newTestService(&fakeFormRepo{form: testForm()}, subs, &fakeBlobStore{}, sink, &fakeFailureLog{})

		_, err := svc.Submit(context.Background(), SubmitCommand{
			Slug:    "event-registration-1700000000",
			Payload: domain.Payload{Values: map[string]any{"name": "Ben"}},
		})

		assert.Error(t, err)
		assert.Empty(t, sink.rows)
	})
}
