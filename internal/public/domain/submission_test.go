package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirrorRow(t *testing.T) {
	form := &Form{
		ID:       "form-1",
		SheetTab: "Event Registration-ab12cd34",
		Fields: []FieldDefinition{
			{ID: "name", Type: "text", Label: "Full Name"},
			{ID: "sessions", Type: "checkbox", Label: "Sessions"},
			{ID: "resume", Type: "file", Label: "Resume"},
			{ID: "notes", Type: "textarea", Label: "Notes"},
		},
	}

	createdAt := time.Date(2026, 8, 30, 12, 34, 56, 0, time.UTC)
	sub := &Submission{
		FormID: form.ID,
		Data: map[string]any{
			"name":     "Aiko Tanaka",
			"sessions": []string{"morning", "evening"},
			"internal": "never mirrored",
		},
		FileLinks: map[string]string{"resume": "https://drive.google.com/file/d/abc/view"},
		CreatedAt: createdAt,
	}

	row := MirrorRow(form, sub)

	require.Len(t, row, 5)
	assert.Equal(t, "2026-08-30T12:34:56Z", row[0])
	assert.Equal(t, "Aiko Tanaka", row[1])
	assert.Equal(t, "morning, evening", row[2])
	assert.Equal(t, "https://drive.google.com/file/d/abc/view", row[3])
	assert.Equal(t, "", row[4])
}

func TestMirrorRowNormalizesTimezone(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	form := &Form{Fields: []FieldDefinition{{ID: "name", Type: "text"}}}
	sub := &Submission{
		Data:      map[string]any{"name": "Emi"},
		CreatedAt: time.Date(2026, 8, 30, 21, 0, 0, 0, jst),
	}

	row := MirrorRow(form, sub)

	assert.Equal(t, "2026-08-30T12:00:00Z", row[0])
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, "", CellValue(nil))
	assert.Equal(t, "hello", CellValue("hello"))
	assert.Equal(t, "a, b, c", CellValue([]string{"a", "b", "c"}))
	assert.Equal(t, "a, 2", CellValue([]any{"a", float64(2)}))
	assert.Equal(t, "42", CellValue(42))
	assert.Equal(t, "true", CellValue(true))
}

func TestNewSubmission(t *testing.T) {
	sub := NewSubmission("form-1", nil, map[string]string{"resume": "link"}, RequestMeta{
		UserAgent: "test/1.0",
		IPAddress: "192.0.2.1",
	})

	assert.Equal(t, "form-1", sub.FormID)
	assert.NotNil(t, sub.Data)
	assert.Equal(t, "link", sub.FileLinks["resume"])
	assert.Equal(t, "test/1.0", sub.UserAgent)
	assert.Equal(t, "192.0.2.1", sub.IPAddress)
}
