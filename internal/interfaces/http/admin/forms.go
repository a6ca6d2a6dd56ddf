package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sngm3741/smartform-services/api/internal/interfaces/http/common"
)

func (h *Handler) formCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		var req adminFormCreateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxJSONBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		form, err := h.formService.Create(ctx, user.ID, buildCreateFormCommand(req))
		if err != nil {
			h.logger.Printf("admin form create failed owner=%s err=%v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, adminFormDomainToResponse(*form, h.shareURL(form.Slug)))
	}
}

func (h *Handler) formListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		forms, err := h.formService.List(ctx, user.ID)
		if err != nil {
			h.logger.Printf("admin form list failed owner=%s err=%v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to list forms"})
			return
		}

		items := make([]adminFormResponse, 0, len(forms))
		for _, form := range forms {
			items = append(items, adminFormDomainToResponse(form, h.shareURL(form.Slug)))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}
