package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/smartform-services/api/internal/interfaces/http/common"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *Handler) formAnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "slug is required"})
			return
		}

		recentLimit, _ := common.ParsePositiveInt(r.URL.Query().Get("limit"), 5)

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		analytics, err := h.formService.Analytics(ctx, slug, recentLimit)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "Form not found"})
				return
			}
			h.logger.Printf("admin form analytics failed slug=%s err=%v", slug, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to load analytics"})
			return
		}

		recent := make([]adminSubmissionResponse, 0, len(analytics.Recent))
		for _, record := range analytics.Recent {
			recent = append(recent, adminSubmissionToResponse(record))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminAnalyticsResponse{
			SubmissionCount: analytics.Count,
			Recent:          recent,
		})
	}
}

func (h *Handler) formExportCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "slug is required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		// Buffer the export so lookup or query failures still produce a
		// proper JSON error instead of a truncated download.
		var buf bytes.Buffer
		if err := h.formService.WriteCSV(ctx, slug, &buf); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "Form not found"})
				return
			}
			h.logger.Printf("admin form csv export failed slug=%s err=%v", slug, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to export submissions"})
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+"-submissions.csv"))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.logger.Printf("failed to write csv response slug=%s err=%v", slug, err)
		}
	}
}
