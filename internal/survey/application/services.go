package application

import (
	"context"
	"io"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// SurveyRepository is the record store port for survey records.
type SurveyRepository interface {
	Insert(ctx context.Context, survey domain.Survey) (string, error)
	FindByID(ctx context.Context, id string) (domain.Survey, error)
	AttachPhoto(ctx context.Context, id, photoPath, photoURL string) error
	Find(ctx context.Context, filter SurveyFilter, paging Paging) ([]domain.Survey, int64, error)
	Metrics(ctx context.Context) (domain.SurveyMetrics, error)
}

// PhotoStore is the blob store port for survey photos.
type PhotoStore interface {
	// Upload stores data under key and returns the stored path. Uploading an
	// existing key fails; keys are never overwritten.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	// PublicURL derives the public URL of a stored path from configuration
	// alone, without a network round trip.
	PublicURL(path string) (string, error)
	Open(ctx context.Context, key string) (PhotoObject, error)
}

// PhotoObject is a stored photo opened for streaming. The caller closes Reader.
type PhotoObject struct {
	ContentType string
	Length      int64
	Reader      io.ReadCloser
}

// SurveyFilter expresses search criteria for survey records.
type SurveyFilter struct {
	Product     string
	Audience    string
	TeamSizeMin int
	TeamSizeMax int
	HasPhoto    *bool
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// SurveyPage is one page of survey records plus the unpaged total.
type SurveyPage struct {
	Surveys []domain.Survey
	Total   int64
	Page    int
	Limit   int
}

// SubmitSurveyCommand carries a validated form state into the submission
// pipeline. Validation and consent are the caller's responsibility.
type SubmitSurveyCommand struct {
	Form domain.FormState
}

// SubmissionResult reports the terminal state of one submission attempt.
type SubmissionResult struct {
	SurveyID  string
	State     SubmissionState
	PhotoPath string
	PhotoURL  string
}

// SubmissionService runs the single-shot submission pipeline.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitSurveyCommand) (SubmissionResult, error)
}

// SurveyQueryService describes survey read use-cases for the admin surface.
type SurveyQueryService interface {
	List(ctx context.Context, filter SurveyFilter, paging Paging) (SurveyPage, error)
	Detail(ctx context.Context, id string) (domain.Survey, error)
	Metrics(ctx context.Context) (domain.SurveyMetrics, error)
}
