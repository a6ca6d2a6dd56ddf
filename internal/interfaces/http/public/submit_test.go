package public

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubmissionBody(t *testing.T) {
	t.Run("decodes a JSON body", func(t *testing.T) {
		body := `{"data":{"name":"Aiko","guests":2,"sessions":["morning","evening"]}}`
		r := httptest.NewRequest("POST", "/forms/slug/submit", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		payload, err := decodeSubmissionBody(r)

		require.NoError(t, err)
		assert.Equal(t, "Aiko", payload.Values["name"])
		assert.Equal(t, float64(2), payload.Values["guests"])
		assert.Empty(t, payload.Attachments)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/forms/slug/submit", strings.NewReader("{"))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		_, err := decodeSubmissionBody(r)

		assert.ErrorContains(t, err, "invalid JSON body")
	})

	t.Run("decodes multipart fields and files in arrival order", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("name", "Ben"))
		require.NoError(t, writer.WriteField("sessions", "morning"))
		require.NoError(t, writer.WriteField("sessions", "evening"))
		part, err := writer.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		r := httptest.NewRequest("POST", "/forms/slug/submit", &buf)
		r.Header.Set("Content-Type", writer.FormDataContentType())

		payload, err := decodeSubmissionBody(r)

		require.NoError(t, err)
		assert.Equal(t, "Ben", payload.Values["name"])
		assert.Equal(t, []string{"morning", "evening"}, payload.Values["sessions"])
		require.Len(t, payload.Attachments, 1)
		assert.Equal(t, "resume", payload.Attachments[0].FieldID)
		assert.Equal(t, "cv.pdf", payload.Attachments[0].Filename)
		assert.Equal(t, []byte("%PDF-1.4"), payload.Attachments[0].Data)
		assert.NotContains(t, payload.Values, "resume")
	})

	t.Run("skips file parts with an empty filename", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="resume"; filename=""`)
		_, err := writer.CreatePart(header)
		require.NoError(t, err)
		require.NoError(t, writer.WriteField("name", "Chloe"))
		require.NoError(t, writer.Close())

		r := httptest.NewRequest("POST", "/forms/slug/submit", &buf)
		r.Header.Set("Content-Type", writer.FormDataContentType())

		payload, err := decodeSubmissionBody(r)

		require.NoError(t, err)
		assert.Empty(t, payload.Attachments)
		assert.NotContains(t, payload.Values, "resume")
		assert.Equal(t, "Chloe", payload.Values["name"])
	})

	t.Run("rejects unsupported content types", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/forms/slug/submit", strings.NewReader("a=b"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := decodeSubmissionBody(r)

		assert.ErrorContains(t, err, "unsupported content type")
	})
}
