package application

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// freeTextPolicy strips all markup from interviewer-entered text.
var freeTextPolicy = bluemonday.StrictPolicy()

// BuildPayload reshapes a form state into the submission payload persisted
// under the record's data field. It is pure: no clock, no randomness, no I/O,
// so repeated calls on the same form state yield deep-equal payloads.
func BuildPayload(form domain.FormState) domain.SubmissionPayload {
	return domain.SubmissionPayload{
		Profiling: domain.Profiling{
			Products:      append([]string{}, form.Products...),
			ProductsOther: sanitizeFreeText(form.ProductsOther),
			Audience:      append([]string{}, form.Audience...),
			AudienceOther: sanitizeFreeText(form.AudienceOther),
			TeamSize:      form.TeamSize,
		},
		PainPoints: domain.PainPoints{
			CustomerEnd: domain.CustomerEndPainPoints{
				LastMinuteCancellations: form.CustomerEnd.LastMinuteCancellations,
				PaymentCollection:       form.CustomerEnd.PaymentCollection,
				LanguageBarriers:        form.CustomerEnd.LanguageBarriers,
				SeasonalSwings:          form.CustomerEnd.SeasonalSwings,
				OtherNote:               sanitizeFreeText(form.CustomerEnd.OtherNote),
			},
			InternalOps: domain.InternalOpsPainPoints{
				ManualBookkeeping: form.InternalOps.ManualBookkeeping,
				StaffScheduling:   form.InternalOps.StaffScheduling,
				InventoryTracking: form.InternalOps.InventoryTracking,
				MarketingReach:    form.InternalOps.MarketingReach,
				OtherNote:         sanitizeFreeText(form.InternalOps.OtherNote),
			},
			SupplierEnd: domain.SupplierEndPainPoints{
				SupplierAvailability: form.SupplierEnd.SupplierAvailability,
				PriceNegotiation:     form.SupplierEnd.PriceNegotiation,
				QualityControl:       form.SupplierEnd.QualityControl,
				ContractPaperwork:    form.SupplierEnd.ContractPaperwork,
				OtherNote:            sanitizeFreeText(form.SupplierEnd.OtherNote),
			},
		},
	}
}

// sanitizeFreeText strips markup and surrounding whitespace from free-text
// input before it enters the payload.
func sanitizeFreeText(value string) string {
	return strings.TrimSpace(freeTextPolicy.Sanitize(value))
}
