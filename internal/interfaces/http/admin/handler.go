package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	surveyapp "github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger  *log.Logger
	surveys surveyapp.SurveyQueryService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger  *log.Logger
	Surveys surveyapp.SurveyQueryService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		surveys: cfg.Surveys,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/surveys", h.surveyListHandler())
	r.Get("/surveys/metrics", h.surveyMetricsHandler())
	r.Get("/surveys/{id}", h.surveyDetailHandler())
}
