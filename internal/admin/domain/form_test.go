package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldList(t *testing.T) {
	t.Run("accepts a valid schema and preserves order", func(t *testing.T) {
		fields, err := NewFieldList([]FieldDefinition{
			{ID: "name", Type: FieldText, Label: "Full Name", Required: true},
			{ID: "rating", Type: FieldDropdown, Options: []FieldOption{{Label: "Good", Value: "good"}}},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"name", "rating"}, fields.IDs())
	})

	t.Run("rejects an empty schema", func(t *testing.T) {
		_, err := NewFieldList(nil)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := NewFieldList([]FieldDefinition{
			{ID: "name", Type: FieldText},
			{ID: "name", Type: FieldEmail},
		})
		assert.ErrorContains(t, err, "duplicate field id")
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := NewFieldList([]FieldDefinition{{ID: "x", Type: "slider"}})
		assert.ErrorContains(t, err, "invalid field type")
	})

	t.Run("option types need options", func(t *testing.T) {
		_, err := NewFieldList([]FieldDefinition{{ID: "x", Type: FieldCheckbox}})
		assert.ErrorContains(t, err, "at least one option")
	})

	t.Run("trims ids and labels", func(t *testing.T) {
		fields, err := NewFieldList([]FieldDefinition{
			{ID: " name ", Type: FieldText, Label: " Full Name "},
		})

		require.NoError(t, err)
		assert.Equal(t, "name", fields[0].ID)
		assert.Equal(t, "Full Name", fields[0].Label)
	})
}

func TestNewSlug(t *testing.T) {
	now := time.Unix(1700000000, 0)

	assert.Equal(t, "event-registration-1700000000", NewSlug("Event Registration", now))
	assert.Equal(t, "feedback-1700000000", NewSlug("  Feedback  ", now))
}

func TestHeaderRow(t *testing.T) {
	fields, err := NewFieldList([]FieldDefinition{
		{ID: "name", Type: FieldText, Label: "Full Name"},
		{ID: "email", Type: FieldEmail},
	})
	require.NoError(t, err)

	form := &Form{Fields: fields}

	assert.Equal(t, []string{"Timestamp", "Full Name", "email"}, form.HeaderRow())
}

func TestNewFieldOption(t *testing.T) {
	t.Run("value falls back to label", func(t *testing.T) {
		opt, err := NewFieldOption("Morning", "")
		require.NoError(t, err)
		assert.Equal(t, "Morning", opt.Value)
	})

	t.Run("label falls back to value", func(t *testing.T) {
		opt, err := NewFieldOption("", "morning")
		require.NoError(t, err)
		assert.Equal(t, "morning", opt.Label)
	})

	t.Run("both empty is rejected", func(t *testing.T) {
		_, err := NewFieldOption("", "")
		assert.Error(t, err)
	})
}
