package public

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/voyago-labs/merchant-pulse-api/internal/interfaces/http/common"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

type submitSurveyRequest struct {
	Products      []string          `json:"products"`
	ProductsOther string            `json:"productsOther,omitempty"`
	Audience      []string          `json:"audience"`
	AudienceOther string            `json:"audienceOther,omitempty"`
	TeamSize      int               `json:"teamSize"`
	PainPoints    painPointsPayload `json:"painPoints"`
	Consent       bool              `json:"consent"`
}

type painPointsPayload struct {
	CustomerEnd customerEndPayload `json:"customerEnd"`
	InternalOps internalOpsPayload `json:"internalOps"`
	SupplierEnd supplierEndPayload `json:"supplierEnd"`
}

type customerEndPayload struct {
	LastMinuteCancellations bool   `json:"lastMinuteCancellations"`
	PaymentCollection       bool   `json:"paymentCollection"`
	LanguageBarriers        bool   `json:"languageBarriers"`
	SeasonalSwings          bool   `json:"seasonalSwings"`
	OtherNote               string `json:"otherNote,omitempty"`
}

type internalOpsPayload struct {
	ManualBookkeeping bool   `json:"manualBookkeeping"`
	StaffScheduling   bool   `json:"staffScheduling"`
	InventoryTracking bool   `json:"inventoryTracking"`
	MarketingReach    bool   `json:"marketingReach"`
	OtherNote         string `json:"otherNote,omitempty"`
}

type supplierEndPayload struct {
	SupplierAvailability bool   `json:"supplierAvailability"`
	PriceNegotiation     bool   `json:"priceNegotiation"`
	QualityControl       bool   `json:"qualityControl"`
	ContractPaperwork    bool   `json:"contractPaperwork"`
	OtherNote            string `json:"otherNote,omitempty"`
}

type submitSurveyResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	State     string `json:"state"`
	PhotoPath string `json:"photoPath,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

func (req *submitSurveyRequest) validate() error {
	if !req.Consent {
		return errors.New("consent is required to submit a survey")
	}

	freeTexts := []struct {
		field string
		value string
	}{
		{"productsOther", req.ProductsOther},
		{"audienceOther", req.AudienceOther},
		{"painPoints.customerEnd.otherNote", req.PainPoints.CustomerEnd.OtherNote},
		{"painPoints.internalOps.otherNote", req.PainPoints.InternalOps.OtherNote},
		{"painPoints.supplierEnd.otherNote", req.PainPoints.SupplierEnd.OtherNote},
	}
	for _, text := range freeTexts {
		if utf8.RuneCountInString(text.value) > common.MaxFreeTextRunes {
			return fmt.Errorf("%s must be %d characters or fewer", text.field, common.MaxFreeTextRunes)
		}
	}
	return nil
}

// toFormState assembles the domain form from the decoded request. Category
// lists arrive already canonicalized; the photo is attached separately.
func (req submitSurveyRequest) toFormState(products, audience []string, photo *domain.PhotoAttachment) domain.FormState {
	return domain.FormState{
		Products:      products,
		ProductsOther: strings.TrimSpace(req.ProductsOther),
		Audience:      audience,
		AudienceOther: strings.TrimSpace(req.AudienceOther),
		TeamSize:      req.TeamSize,
		CustomerEnd: domain.CustomerEndPainPoints{
			LastMinuteCancellations: req.PainPoints.CustomerEnd.LastMinuteCancellations,
			PaymentCollection:       req.PainPoints.CustomerEnd.PaymentCollection,
			LanguageBarriers:        req.PainPoints.CustomerEnd.LanguageBarriers,
			SeasonalSwings:          req.PainPoints.CustomerEnd.SeasonalSwings,
			OtherNote:               req.PainPoints.CustomerEnd.OtherNote,
		},
		InternalOps: domain.InternalOpsPainPoints{
			ManualBookkeeping: req.PainPoints.InternalOps.ManualBookkeeping,
			StaffScheduling:   req.PainPoints.InternalOps.StaffScheduling,
			InventoryTracking: req.PainPoints.InternalOps.InventoryTracking,
			MarketingReach:    req.PainPoints.InternalOps.MarketingReach,
			OtherNote:         req.PainPoints.InternalOps.OtherNote,
		},
		SupplierEnd: domain.SupplierEndPainPoints{
			SupplierAvailability: req.PainPoints.SupplierEnd.SupplierAvailability,
			PriceNegotiation:     req.PainPoints.SupplierEnd.PriceNegotiation,
			QualityControl:       req.PainPoints.SupplierEnd.QualityControl,
			ContractPaperwork:    req.PainPoints.SupplierEnd.ContractPaperwork,
			OtherNote:            req.PainPoints.SupplierEnd.OtherNote,
		},
		Photo: photo,
	}
}
