package admin

import (
	"time"

	"github.com/voyago-labs/merchant-pulse-api/internal/interfaces/http/common"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

type adminSurveyResponse struct {
	ID            string                 `json:"id"`
	CreatedAt     time.Time              `json:"createdAt"`
	Products      []string               `json:"products"`
	ProductsOther string                 `json:"productsOther,omitempty"`
	Audience      []string               `json:"audience"`
	AudienceOther string                 `json:"audienceOther,omitempty"`
	TeamSize      int                    `json:"teamSize"`
	TeamSizeLabel string                 `json:"teamSizeLabel"`
	PainPoints    adminPainPointsPayload `json:"painPoints"`
	PhotoPath     *string                `json:"photoPath"`
	PhotoURL      *string                `json:"photoUrl"`
}

type adminPainPointsPayload struct {
	CustomerEnd adminCustomerEndPayload `json:"customerEnd"`
	InternalOps adminInternalOpsPayload `json:"internalOps"`
	SupplierEnd adminSupplierEndPayload `json:"supplierEnd"`
}

type adminCustomerEndPayload struct {
	LastMinuteCancellations bool   `json:"lastMinuteCancellations"`
	PaymentCollection       bool   `json:"paymentCollection"`
	LanguageBarriers        bool   `json:"languageBarriers"`
	SeasonalSwings          bool   `json:"seasonalSwings"`
	OtherNote               string `json:"otherNote,omitempty"`
}

type adminInternalOpsPayload struct {
	ManualBookkeeping bool   `json:"manualBookkeeping"`
	StaffScheduling   bool   `json:"staffScheduling"`
	InventoryTracking bool   `json:"inventoryTracking"`
	MarketingReach    bool   `json:"marketingReach"`
	OtherNote         string `json:"otherNote,omitempty"`
}

type adminSupplierEndPayload struct {
	SupplierAvailability bool   `json:"supplierAvailability"`
	PriceNegotiation     bool   `json:"priceNegotiation"`
	QualityControl       bool   `json:"qualityControl"`
	ContractPaperwork    bool   `json:"contractPaperwork"`
	OtherNote            string `json:"otherNote,omitempty"`
}

type adminSurveyListResponse struct {
	Items []adminSurveyResponse `json:"items"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Total int64                 `json:"total"`
}

type adminMetricsResponse struct {
	TotalSurveys     int64                   `json:"totalSurveys"`
	SurveysWithPhoto int64                   `json:"surveysWithPhoto"`
	Products         []categoryCountPayload  `json:"products"`
	Audience         []categoryCountPayload  `json:"audience"`
	TeamSizes        []teamSizeBucketPayload `json:"teamSizes"`
}

type categoryCountPayload struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type teamSizeBucketPayload struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// adminSurveyDomainToResponse converts a survey record into the admin DTO.
// Photo fields stay null until a photo was attached.
func adminSurveyDomainToResponse(survey domain.Survey) adminSurveyResponse {
	return adminSurveyResponse{
		ID:            survey.ID,
		CreatedAt:     survey.CreatedAt,
		Products:      append([]string{}, survey.Data.Profiling.Products...),
		ProductsOther: survey.Data.Profiling.ProductsOther,
		Audience:      append([]string{}, survey.Data.Profiling.Audience...),
		AudienceOther: survey.Data.Profiling.AudienceOther,
		TeamSize:      survey.Data.Profiling.TeamSize,
		TeamSizeLabel: common.TeamSizeLabel(survey.Data.Profiling.TeamSize),
		PainPoints: adminPainPointsPayload{
			CustomerEnd: adminCustomerEndPayload{
				LastMinuteCancellations: survey.Data.PainPoints.CustomerEnd.LastMinuteCancellations,
				PaymentCollection:       survey.Data.PainPoints.CustomerEnd.PaymentCollection,
				LanguageBarriers:        survey.Data.PainPoints.CustomerEnd.LanguageBarriers,
				SeasonalSwings:          survey.Data.PainPoints.CustomerEnd.SeasonalSwings,
				OtherNote:               survey.Data.PainPoints.CustomerEnd.OtherNote,
			},
			InternalOps: adminInternalOpsPayload{
				ManualBookkeeping: survey.Data.PainPoints.InternalOps.ManualBookkeeping,
				StaffScheduling:   survey.Data.PainPoints.InternalOps.StaffScheduling,
				InventoryTracking: survey.Data.PainPoints.InternalOps.InventoryTracking,
				MarketingReach:    survey.Data.PainPoints.InternalOps.MarketingReach,
				OtherNote:         survey.Data.PainPoints.InternalOps.OtherNote,
			},
			SupplierEnd: adminSupplierEndPayload{
				SupplierAvailability: survey.Data.PainPoints.SupplierEnd.SupplierAvailability,
				PriceNegotiation:     survey.Data.PainPoints.SupplierEnd.PriceNegotiation,
				QualityControl:       survey.Data.PainPoints.SupplierEnd.QualityControl,
				ContractPaperwork:    survey.Data.PainPoints.SupplierEnd.ContractPaperwork,
				OtherNote:            survey.Data.PainPoints.SupplierEnd.OtherNote,
			},
		},
		PhotoPath: stringPtr(survey.PhotoPath),
		PhotoURL:  stringPtr(survey.PhotoURL),
	}
}

func adminMetricsFromDomain(metrics domain.SurveyMetrics) adminMetricsResponse {
	response := adminMetricsResponse{
		TotalSurveys:     metrics.TotalSurveys,
		SurveysWithPhoto: metrics.SurveysWithPhoto,
		Products:         make([]categoryCountPayload, 0, len(metrics.Products)),
		Audience:         make([]categoryCountPayload, 0, len(metrics.Audience)),
		TeamSizes:        make([]teamSizeBucketPayload, 0, len(metrics.TeamSizes)),
	}
	for _, count := range metrics.Products {
		response.Products = append(response.Products, categoryCountPayload{Category: count.Category, Count: count.Count})
	}
	for _, count := range metrics.Audience {
		response.Audience = append(response.Audience, categoryCountPayload{Category: count.Category, Count: count.Count})
	}
	for _, bucket := range metrics.TeamSizes {
		response.TeamSizes = append(response.TeamSizes, teamSizeBucketPayload{Label: bucket.Label, Count: bucket.Count})
	}
	return response
}

func stringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
