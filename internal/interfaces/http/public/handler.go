package public

import (
	"log"

	"github.com/go-chi/chi/v5"
	publicapp "github.com/sngm3741/smartform-services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        *log.Logger
	forms         publicapp.FormQueryService
	submissions   publicapp.SubmissionService
	publicBaseURL string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *log.Logger
	Forms         publicapp.FormQueryService
	Submissions   publicapp.SubmissionService
	PublicBaseURL string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:        cfg.Logger,
		forms:         cfg.Forms,
		submissions:   cfg.Submissions,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

// Register mounts all public routes onto the router. Submission requires no
// authentication: the slug is the only credential a form share link carries.
func (h *Handler) Register(r chi.Router) {
	r.Get("/forms/{slug}", h.formDetailHandler())
	r.Post("/forms/{slug}/submit", h.submitHandler())
	r.Get("/forms/{slug}/qr", h.qrHandler())
}

func (h *Handler) shareURL(slug string) string {
	return h.publicBaseURL + "/f/" + slug
}
