package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/sngm3741/smartform-services/api/internal/interfaces/http/common"
)

const qrImageSize = 256

// qrHandler renders the share link for a slug as a PNG QR code. The slug is
// not resolved against storage: a code for an unpublished slug simply points
// at a page that will 404.
func (h *Handler) qrHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "slug is required"})
			return
		}

		png, err := qrcode.Encode(h.shareURL(slug), qrcode.Medium, qrImageSize)
		if err != nil {
			h.logger.Printf("qr encode failed for slug %q: %v", slug, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to render QR code"})
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(png); err != nil {
			h.logger.Printf("failed to write QR response: %v", err)
		}
	}
}
