package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/smartform-services/api/internal/admin/domain"
)

type fakeFormRepo struct {
	created *admindomain.Form
	forms   []admindomain.Form
	err     error
}

func (f *fakeFormRepo) Create(_ context.Context, form *admindomain.Form) error {
	if f.err != nil {
		return f.err
	}
	form.ID = "form-1"
	f.created = form
	return nil
}

func (f *fakeFormRepo) FindByOwner(_ context.Context, ownerUID string) ([]admindomain.Form, error) {
	result := make([]admindomain.Form, 0, len(f.forms))
	for _, form := range f.forms {
		if form.OwnerUID == ownerUID {
			result = append(result, form)
		}
	}
	return result, nil
}

func (f *fakeFormRepo) FindBySlug(_ context.Context, slug string) (*admindomain.Form, error) {
	for i := range f.forms {
		if f.forms[i].Slug == slug {
			return &f.forms[i], nil
		}
	}
	return nil, errors.New("mongo: no documents in result")
}

type fakeSubmissionRepo struct {
	records []admindomain.SubmissionRecord
}

func (f *fakeSubmissionRepo) CountByForm(_ context.Context, _ string) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeSubmissionRepo) FindRecentByForm(_ context.Context, _ string, limit int) ([]admindomain.SubmissionRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeSubmissionRepo) FindAllByForm(_ context.Context, _ string) ([]admindomain.SubmissionRecord, error) {
	return f.records, nil
}

type fakeSheetProvisioner struct {
	tab     string
	headers []string
	err     error
	calls   int
}

func (f *fakeSheetProvisioner) CreateTab(_ context.Context, _ string, headers []string) (string, error) {
	f.calls++
	f.headers = headers
	if f.err != nil {
		return "", f.err
	}
	return f.tab, nil
}

func validCommand() CreateFormCommand {
	return CreateFormCommand{
		Title:       "Event Registration",
		Description: "Sign up here.",
		Fields: []FieldCommand{
			{ID: "name", Type: "text", Label: "Full Name", Required: true},
			{ID: "sessions", Type: "checkbox", Label: "Sessions", Options: []FieldOptionCommand{
				{Label: "Morning", Value: "morning"},
			}},
		},
	}
}

func TestFormServiceCreate(t *testing.T) {
	t.Run("provisions the tab then persists the form", func(t *testing.T) {
		repo := &fakeFormRepo{}
		sheets := &fakeSheetProvisioner{tab: "Event Registration-ab12cd34"}
		svc := NewFormService(repo, &fakeSubmissionRepo{}, sheets)

		form, err := svc.Create(context.Background(), "user-1", validCommand())

		require.NoError(t, err)
		assert.Equal(t, "form-1", form.ID)
		assert.Equal(t, "Event Registration-ab12cd34", form.SheetTab)
		assert.Equal(t, "user-1", form.OwnerUID)
		assert.Contains(t, form.Slug, "event-registration-")
		assert.Equal(t, []string{"Timestamp", "Full Name", "Sessions"}, sheets.headers)
		require.NotNil(t, repo.created)
	})

	t.Run("tab provisioning failure aborts the creation", func(t *testing.T) {
		repo := &fakeFormRepo{}
		sheets := &fakeSheetProvisioner{err: errors.New("spreadsheet full")}
		svc := NewFormService(repo, &fakeSubmissionRepo{}, sheets)

		_, err := svc.Create(context.Background(), "user-1", validCommand())

		assert.ErrorContains(t, err, "provision sheet tab")
		assert.Nil(t, repo.created)
	})

	t.Run("invalid schema never reaches the sheet", func(t *testing.T) {
		sheets := &fakeSheetProvisioner{tab: "x"}
		svc := NewFormService(&fakeFormRepo{}, &fakeSubmissionRepo{}, sheets)

		cmd := validCommand()
		cmd.Fields = nil
		_, err := svc.Create(context.Background(), "user-1", cmd)

		assert.Error(t, err)
		assert.Zero(t, sheets.calls)
	})

	t.Run("title is required", func(t *testing.T) {
		svc := NewFormService(&fakeFormRepo{}, &fakeSubmissionRepo{}, &fakeSheetProvisioner{})

		cmd := validCommand()
		cmd.Title = "   "
		_, err := svc.Create(context.Background(), "user-1", cmd)

		assert.ErrorContains(t, err, "title is required")
	})
}

func TestFormServiceAnalytics(t *testing.T) {
	form := admindomain.Form{ID: "form-1", Slug: "event-registration-1700000000", OwnerUID: "user-1"}
	records := []admindomain.SubmissionRecord{
		{ID: "s1", CreatedAt: time.Now()},
		{ID: "s2", CreatedAt: time.Now()},
	}
	svc := NewFormService(&fakeFormRepo{forms: []admindomain.Form{form}}, &fakeSubmissionRepo{records: records}, &fakeSheetProvisioner{})

	analytics, err := svc.Analytics(context.Background(), form.Slug, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.Count)
	assert.Len(t, analytics.Recent, 2)
}

func TestFormServiceWriteCSV(t *testing.T) {
	fields, err := admindomain.NewFieldList([]admindomain.FieldDefinition{
		{ID: "name", Type: admindomain.FieldText, Label: "Full Name"},
		{ID: "sessions", Type: admindomain.FieldCheckbox, Options: []admindomain.FieldOption{{Label: "Morning", Value: "morning"}}},
		{ID: "resume", Type: admindomain.FieldFile},
	})
	require.NoError(t, err)

	form := admindomain.Form{ID: "form-1", Slug: "event-registration-1700000000", Fields: fields}
	records := []admindomain.SubmissionRecord{
		{
			Data:      map[string]any{"name": "Aiko", "sessions": []any{"morning", "evening"}},
			FileLinks: map[string]string{"resume": "https://drive/cv"},
			CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			Data: map[string]any{"name": "Ben"},
		},
	}
	svc := NewFormService(&fakeFormRepo{forms: []admindomain.Form{form}}, &fakeSubmissionRepo{records: records}, &fakeSheetProvisioner{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), form.Slug, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"timestamp", "name", "sessions", "resume"}, rows[0])
	assert.Equal(t, []string{"2026-08-30T12:00:00Z", "Aiko", "morning, evening", "https://drive/cv"}, rows[1])
	assert.Equal(t, []string{"", "Ben", "", ""}, rows[2])
}
