package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// SurveyDocument is the survey record schema in MongoDB. Keys follow the
// snake_case wire schema shared with the mobile submission client. photo_path
// and photo_url stay null until a photo attach succeeds.
type SurveyDocument struct {
	ID        primitive.ObjectID     `bson:"_id"`
	CreatedAt time.Time              `bson:"created_at"`
	Data      SubmissionDataDocument `bson:"data"`
	PhotoPath *string                `bson:"photo_path"`
	PhotoURL  *string                `bson:"photo_url"`
}

// SubmissionDataDocument is the payload subdocument built by the submission
// pipeline.
type SubmissionDataDocument struct {
	Profiling  ProfilingDocument  `bson:"profiling"`
	PainPoints PainPointsDocument `bson:"pain_points"`
}

// ProfilingDocument embeds the business profile section.
type ProfilingDocument struct {
	Products      []string `bson:"products"`
	ProductsOther string   `bson:"products_other,omitempty"`
	Audience      []string `bson:"audience"`
	AudienceOther string   `bson:"audience_other,omitempty"`
	TeamSize      int      `bson:"team_size"`
}

// PainPointsDocument embeds the three pain point sections.
type PainPointsDocument struct {
	CustomerEnd CustomerEndDocument `bson:"customer_end"`
	InternalOps InternalOpsDocument `bson:"internal_ops"`
	SupplierEnd SupplierEndDocument `bson:"supplier_end"`
}

type CustomerEndDocument struct {
	LastMinuteCancellations bool   `bson:"last_minute_cancellations"`
	PaymentCollection       bool   `bson:"payment_collection"`
	LanguageBarriers        bool   `bson:"language_barriers"`
	SeasonalSwings          bool   `bson:"seasonal_swings"`
	OtherNote               string `bson:"other_note,omitempty"`
}

type InternalOpsDocument struct {
	ManualBookkeeping bool   `bson:"manual_bookkeeping"`
	StaffScheduling   bool   `bson:"staff_scheduling"`
	InventoryTracking bool   `bson:"inventory_tracking"`
	MarketingReach    bool   `bson:"marketing_reach"`
	OtherNote         string `bson:"other_note,omitempty"`
}

type SupplierEndDocument struct {
	SupplierAvailability bool   `bson:"supplier_availability"`
	PriceNegotiation     bool   `bson:"price_negotiation"`
	QualityControl       bool   `bson:"quality_control"`
	ContractPaperwork    bool   `bson:"contract_paperwork"`
	OtherNote            string `bson:"other_note,omitempty"`
}

// newSurveyDocument maps a domain record to its Mongo document. The caller
// assigns the ObjectID; photo fields stay null until AttachPhoto writes them.
func newSurveyDocument(survey domain.Survey) SurveyDocument {
	return SurveyDocument{
		CreatedAt: survey.CreatedAt,
		Data: SubmissionDataDocument{
			Profiling: ProfilingDocument{
				Products:      append([]string{}, survey.Data.Profiling.Products...),
				ProductsOther: survey.Data.Profiling.ProductsOther,
				Audience:      append([]string{}, survey.Data.Profiling.Audience...),
				AudienceOther: survey.Data.Profiling.AudienceOther,
				TeamSize:      survey.Data.Profiling.TeamSize,
			},
			PainPoints: PainPointsDocument{
				CustomerEnd: CustomerEndDocument{
					LastMinuteCancellations: survey.Data.PainPoints.CustomerEnd.LastMinuteCancellations,
					PaymentCollection:       survey.Data.PainPoints.CustomerEnd.PaymentCollection,
					LanguageBarriers:        survey.Data.PainPoints.CustomerEnd.LanguageBarriers,
					SeasonalSwings:          survey.Data.PainPoints.CustomerEnd.SeasonalSwings,
					OtherNote:               survey.Data.PainPoints.CustomerEnd.OtherNote,
				},
				InternalOps: InternalOpsDocument{
					ManualBookkeeping: survey.Data.PainPoints.InternalOps.ManualBookkeeping,
					StaffScheduling:   survey.Data.PainPoints.InternalOps.StaffScheduling,
					InventoryTracking: survey.Data.PainPoints.InternalOps.InventoryTracking,
					MarketingReach:    survey.Data.PainPoints.InternalOps.MarketingReach,
					OtherNote:         survey.Data.PainPoints.InternalOps.OtherNote,
				},
				SupplierEnd: SupplierEndDocument{
					SupplierAvailability: survey.Data.PainPoints.SupplierEnd.SupplierAvailability,
					PriceNegotiation:     survey.Data.PainPoints.SupplierEnd.PriceNegotiation,
					QualityControl:       survey.Data.PainPoints.SupplierEnd.QualityControl,
					ContractPaperwork:    survey.Data.PainPoints.SupplierEnd.ContractPaperwork,
					OtherNote:            survey.Data.PainPoints.SupplierEnd.OtherNote,
				},
			},
		},
	}
}

// mapSurveyDocument restores a Mongo document into the domain record.
func mapSurveyDocument(doc SurveyDocument) domain.Survey {
	survey := domain.Survey{
		ID:        doc.ID.Hex(),
		CreatedAt: doc.CreatedAt,
		Data: domain.SubmissionPayload{
			Profiling: domain.Profiling{
				Products:      append([]string{}, doc.Data.Profiling.Products...),
				ProductsOther: doc.Data.Profiling.ProductsOther,
				Audience:      append([]string{}, doc.Data.Profiling.Audience...),
				AudienceOther: doc.Data.Profiling.AudienceOther,
				TeamSize:      doc.Data.Profiling.TeamSize,
			},
			PainPoints: domain.PainPoints{
				CustomerEnd: domain.CustomerEndPainPoints{
					LastMinuteCancellations: doc.Data.PainPoints.CustomerEnd.LastMinuteCancellations,
					PaymentCollection:       doc.Data.PainPoints.CustomerEnd.PaymentCollection,
					LanguageBarriers:        doc.Data.PainPoints.CustomerEnd.LanguageBarriers,
					SeasonalSwings:          doc.Data.PainPoints.CustomerEnd.SeasonalSwings,
					OtherNote:               doc.Data.PainPoints.CustomerEnd.OtherNote,
				},
				InternalOps: domain.InternalOpsPainPoints{
					ManualBookkeeping: doc.Data.PainPoints.InternalOps.ManualBookkeeping,
					StaffScheduling:   doc.Data.PainPoints.InternalOps.StaffScheduling,
					InventoryTracking: doc.Data.PainPoints.InternalOps.InventoryTracking,
					MarketingReach:    doc.Data.PainPoints.InternalOps.MarketingReach,
					OtherNote:         doc.Data.PainPoints.InternalOps.OtherNote,
				},
				SupplierEnd: domain.SupplierEndPainPoints{
					SupplierAvailability: doc.Data.PainPoints.SupplierEnd.SupplierAvailability,
					PriceNegotiation:     doc.Data.PainPoints.SupplierEnd.PriceNegotiation,
					QualityControl:       doc.Data.PainPoints.SupplierEnd.QualityControl,
					ContractPaperwork:    doc.Data.PainPoints.SupplierEnd.ContractPaperwork,
					OtherNote:            doc.Data.PainPoints.SupplierEnd.OtherNote,
				},
			},
		},
	}

	if doc.PhotoPath != nil {
		survey.PhotoPath = *doc.PhotoPath
	}
	if doc.PhotoURL != nil {
		survey.PhotoURL = *doc.PhotoURL
	}
	return survey
}
