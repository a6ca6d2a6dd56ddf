package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/smartform-services/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/smartform-services/api/internal/public/application"
	"github.com/sngm3741/smartform-services/api/internal/public/domain"
)

type submitJSONRequest struct {
	Data map[string]any `json:"data"`
}

// submitHandler accepts a public submission in either of its two wire
// shapes: a JSON body with a nested data map, or a multipart form mixing
// text fields and file uploads.
func (h *Handler) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "slug is required"})
			return
		}

		payload, err := decodeSubmissionBody(r)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		id, err := h.submissions.Submit(ctx, publicapp.SubmitCommand{
			Slug:    slug,
			Payload: payload,
			Meta: domain.RequestMeta{
				UserAgent: r.UserAgent(),
				IPAddress: r.RemoteAddr,
			},
		})
		if err != nil {
			h.writeSubmitError(w, slug, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, submitResponse{Status: "ok", SubmissionID: id})
	}
}

func (h *Handler) writeSubmitError(w http.ResponseWriter, slug string, err error) {
	var required *domain.RequiredFieldError
	switch {
	case errors.Is(err, domain.ErrFormNotFound):
		common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "Form not found"})
	case errors.As(err, &required):
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Missing required field: %s", required.DisplayName()),
		})
	case errors.Is(err, domain.ErrUploadFailed):
		h.logger.Printf("submission upload failed for slug %q: %v", slug, err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "file upload failed"})
	default:
		h.logger.Printf("submission failed for slug %q: %v", slug, err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to store submission"})
	}
}

// decodeSubmissionBody turns the raw request into the canonical payload.
// Multipart parts are read in arrival order so repeated checkbox keys fold
// in the order the client sent them.
func decodeSubmissionBody(r *http.Request) (domain.Payload, error) {
	defer r.Body.Close()

	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	if strings.HasPrefix(mediaType, "application/json") {
		var req submitJSONRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxJSONBody))
		if err := decoder.Decode(&req); err != nil {
			return domain.Payload{}, fmt.Errorf("invalid JSON body: %v", err)
		}
		return domain.NormalizeJSON(req.Data), nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		reader, err := r.MultipartReader()
		if err != nil {
			return domain.Payload{}, fmt.Errorf("invalid multipart body: %v", err)
		}
		entries, err := decodeMultipartEntries(reader)
		if err != nil {
			return domain.Payload{}, err
		}
		return domain.NormalizeEntries(entries), nil
	}

	return domain.Payload{}, fmt.Errorf("unsupported content type: %s", contentType)
}

func decodeMultipartEntries(reader *multipart.Reader) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid multipart body: %v", err)
		}

		entry, keep, err := decodeMultipartPart(part)
		part.Close()
		if err != nil {
			return nil, err
		}
		if keep {
			entries = append(entries, entry)
		}
	}
}

func decodeMultipartPart(part *multipart.Part) (domain.Entry, bool, error) {
	name := part.FormName()
	if name == "" {
		return domain.Entry{}, false, nil
	}

	if filename := part.FileName(); filename != "" {
		data, err := readLimited(part, common.MaxAttachmentBytes)
		if err != nil {
			return domain.Entry{}, false, fmt.Errorf("file %q: %v", filename, err)
		}
		return domain.Entry{
			Key: name,
			File: &domain.Attachment{
				FieldID:     name,
				Filename:    filename,
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			},
		}, true, nil
	}

	// A file input left empty arrives with an empty filename parameter;
	// it is neither a value nor an attachment.
	if hasEmptyFilenameParam(part.Header.Get("Content-Disposition")) {
		return domain.Entry{}, false, nil
	}

	value, err := readLimited(part, common.MaxTextPartBytes)
	if err != nil {
		return domain.Entry{}, false, fmt.Errorf("field %q: %v", name, err)
	}
	return domain.Entry{Key: name, Value: string(value)}, true, nil
}

func hasEmptyFilenameParam(disposition string) bool {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return false
	}
	filename, ok := params["filename"]
	return ok && filename == ""
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("exceeds the %d byte limit", limit)
	}
	return data, nil
}
