package domain

import "strings"

// Team size bounds captured by the profiling slider. The upper bound is stored
// as the integer 100; only display labels render it as "100+".
const (
	MinTeamSize = 1
	MaxTeamSize = 100
)

// PhotoAttachment is an optional storefront photo captured in the final wizard step.
type PhotoAttachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CustomerEndPainPoints flags friction the merchant reports on the traveller side.
type CustomerEndPainPoints struct {
	LastMinuteCancellations bool
	PaymentCollection       bool
	LanguageBarriers        bool
	SeasonalSwings          bool
	OtherNote               string
}

// InternalOpsPainPoints flags friction inside the merchant's own operation.
type InternalOpsPainPoints struct {
	ManualBookkeeping bool
	StaffScheduling   bool
	InventoryTracking bool
	MarketingReach    bool
	OtherNote         string
}

// SupplierEndPainPoints flags friction with the merchant's upstream suppliers.
type SupplierEndPainPoints struct {
	SupplierAvailability bool
	PriceNegotiation     bool
	QualityControl       bool
	ContractPaperwork    bool
	OtherNote            string
}

// FormState is the content of a completed survey wizard. Category lists are
// expected in canonical form; NormalizeProductList and NormalizeAudienceList
// produce them from raw input. Consent is confirmed at the HTTP edge and is
// deliberately absent here.
type FormState struct {
	Products      []string
	ProductsOther string
	Audience      []string
	AudienceOther string
	TeamSize      int
	CustomerEnd   CustomerEndPainPoints
	InternalOps   InternalOpsPainPoints
	SupplierEnd   SupplierEndPainPoints
	Photo         *PhotoAttachment
}

// ValidationError reports a survey form field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate enforces the profiling invariants: both category lists non-empty
// and canonical, a free-text companion wherever "Other" is selected, and the
// team size within bounds. Photo admissibility is checked at the HTTP edge.
func (f FormState) Validate() error {
	if len(f.Products) == 0 {
		return &ValidationError{Field: "products", Message: "select at least one product category"}
	}
	for _, product := range f.Products {
		if !containsCategory(ProductCategories, product) {
			return &ValidationError{Field: "products", Message: "unknown product category: " + product}
		}
	}
	if containsCategory(f.Products, CategoryOther) && strings.TrimSpace(f.ProductsOther) == "" {
		return &ValidationError{Field: "productsOther", Message: "describe the other product category"}
	}

	if len(f.Audience) == 0 {
		return &ValidationError{Field: "audience", Message: "select at least one audience category"}
	}
	for _, audience := range f.Audience {
		if !containsCategory(AudienceCategories, audience) {
			return &ValidationError{Field: "audience", Message: "unknown audience category: " + audience}
		}
	}
	if containsCategory(f.Audience, CategoryOther) && strings.TrimSpace(f.AudienceOther) == "" {
		return &ValidationError{Field: "audienceOther", Message: "describe the other audience category"}
	}

	if f.TeamSize < MinTeamSize || f.TeamSize > MaxTeamSize {
		return &ValidationError{Field: "teamSize", Message: "team size must be between 1 and 100"}
	}

	return nil
}
