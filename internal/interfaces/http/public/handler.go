package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	surveyapp "github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger               *log.Logger
	submissions          surveyapp.SubmissionService
	photos               surveyapp.PhotoStore
	failedNotifications  *mongo.Collection
	httpClient           *http.Client
	messengerEndpoint    string
	messengerDestination string
	adminReviewBaseURL   string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger               *log.Logger
	Submissions          surveyapp.SubmissionService
	Photos               surveyapp.PhotoStore
	FailedNotifications  *mongo.Collection
	HTTPClient           *http.Client
	MessengerEndpoint    string
	MessengerDestination string
	AdminReviewBaseURL   string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:               cfg.Logger,
		submissions:          cfg.Submissions,
		photos:               cfg.Photos,
		failedNotifications:  cfg.FailedNotifications,
		httpClient:           cfg.HTTPClient,
		messengerEndpoint:    cfg.MessengerEndpoint,
		messengerDestination: cfg.MessengerDestination,
		adminReviewBaseURL:   cfg.AdminReviewBaseURL,
	}
}

// Register mounts the public survey routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/surveys", h.surveySubmitHandler())
}

// RegisterMedia mounts photo delivery onto the router. It is kept apart from
// Register so the server can serve media outside the API prefix.
func (h *Handler) RegisterMedia(r chi.Router) {
	r.Get("/media/survey-photos/{file}", h.photoHandler())
}
