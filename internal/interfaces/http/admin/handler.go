package admin

import (
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/smartform-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger        *log.Logger
	formService   adminapp.FormService
	publicBaseURL string
}

// Config provides dependencies for Handler.
type Config struct {
	Logger        *log.Logger
	FormService   adminapp.FormService
	PublicBaseURL string
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:        cfg.Logger,
		formService:   cfg.FormService,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/forms", h.formCreateHandler())
	r.Get("/forms", h.formListHandler())
	r.Get("/forms/{slug}/analytics", h.formAnalyticsHandler())
	r.Get("/forms/{slug}/export/csv", h.formExportCSVHandler())
}

func (h *Handler) shareURL(slug string) string {
	return h.publicBaseURL + "/f/" + slug
}
