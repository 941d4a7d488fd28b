package application

import (
	"context"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// surveyQueryService implements SurveyQueryService.
type surveyQueryService struct {
	repo SurveyRepository
}

// NewSurveyQueryService creates a new SurveyQueryService.
func NewSurveyQueryService(repo SurveyRepository) SurveyQueryService {
	return &surveyQueryService{repo: repo}
}

func (s *surveyQueryService) List(ctx context.Context, filter SurveyFilter, paging Paging) (SurveyPage, error) {
	if paging.Page < 1 {
		paging.Page = 1
	}
	if paging.Limit < 1 {
		paging.Limit = defaultPageLimit
	}
	if paging.Limit > maxPageLimit {
		paging.Limit = maxPageLimit
	}

	surveys, total, err := s.repo.Find(ctx, filter, paging)
	if err != nil {
		return SurveyPage{}, err
	}

	return SurveyPage{Surveys: surveys, Total: total, Page: paging.Page, Limit: paging.Limit}, nil
}

func (s *surveyQueryService) Detail(ctx context.Context, id string) (domain.Survey, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *surveyQueryService) Metrics(ctx context.Context) (domain.SurveyMetrics, error) {
	return s.repo.Metrics(ctx)
}
