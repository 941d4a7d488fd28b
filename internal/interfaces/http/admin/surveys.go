package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voyago-labs/merchant-pulse-api/internal/interfaces/http/common"
	surveyapp "github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

func (h *Handler) surveyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter, err := parseSurveyFilter(query)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 0)
		paging := surveyapp.Paging{Page: page, Limit: limit}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := h.surveys.List(ctx, filter, paging)
		if err != nil {
			h.logger.Printf("admin survey list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to list surveys"})
			return
		}

		items := make([]adminSurveyResponse, 0, len(result.Surveys))
		for _, survey := range result.Surveys {
			items = append(items, adminSurveyDomainToResponse(survey))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminSurveyListResponse{
			Items: items,
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
		})
	}
}

// parseSurveyFilter maps list query parameters onto the application filter.
// Category filters must name a canonical category; aliases are accepted.
func parseSurveyFilter(query url.Values) (surveyapp.SurveyFilter, error) {
	filter := surveyapp.SurveyFilter{}

	if raw := strings.TrimSpace(query.Get("product")); raw != "" {
		product, ok := domain.CanonicalProductCategory(raw)
		if !ok {
			return filter, fmt.Errorf("unknown product category: %s", raw)
		}
		filter.Product = product
	}
	if raw := strings.TrimSpace(query.Get("audience")); raw != "" {
		audience, ok := domain.CanonicalAudienceCategory(raw)
		if !ok {
			return filter, fmt.Errorf("unknown audience category: %s", raw)
		}
		filter.Audience = audience
	}

	if minimum, ok := common.ParsePositiveInt(query.Get("teamSizeMin"), 0); ok {
		filter.TeamSizeMin = minimum
	}
	if maximum, ok := common.ParsePositiveInt(query.Get("teamSizeMax"), 0); ok {
		filter.TeamSizeMax = maximum
	}
	if filter.TeamSizeMin > 0 && filter.TeamSizeMax > 0 && filter.TeamSizeMax < filter.TeamSizeMin {
		return filter, errors.New("teamSizeMax must not be below teamSizeMin")
	}

	if raw := strings.TrimSpace(query.Get("hasPhoto")); raw != "" {
		hasPhoto, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid hasPhoto value: %s", raw)
		}
		filter.HasPhoto = &hasPhoto
	}

	return filter, nil
}

func (h *Handler) surveyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "survey id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		survey, err := h.surveys.Detail(ctx, idParam)
		if err != nil {
			if errors.Is(err, domain.ErrSurveyNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "survey not found"})
				return
			}
			h.logger.Printf("admin survey detail fetch failed id=%s err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to load survey"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminSurveyDomainToResponse(survey))
	}
}

func (h *Handler) surveyMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		metrics, err := h.surveys.Metrics(ctx)
		if err != nil {
			h.logger.Printf("admin survey metrics fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "failed to compute metrics"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminMetricsFromDomain(metrics))
	}
}
