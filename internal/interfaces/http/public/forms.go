package public

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/smartform-services/api/internal/interfaces/http/common"
	"github.com/sngm3741/smartform-services/api/internal/public/domain"
)

// formDetailHandler serves the published schema a share link renders from.
func (h *Handler) formDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "slug is required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		form, err := h.forms.BySlug(ctx, slug)
		if errors.Is(err, domain.ErrFormNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "Form not found"})
			return
		}
		if err != nil {
			h.logger.Printf("form lookup failed for slug %q: %v", slug, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to load form"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildFormResponse(form, h.shareURL(form.Slug)))
	}
}
