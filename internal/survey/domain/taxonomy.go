package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical product categories a merchant can select in the profiling step.
const (
	ProductToursExperiences   = "Tours & Experiences"
	ProductAccommodation      = "Accommodation"
	ProductTransportTransfers = "Transport & Transfers"
	ProductTicketsAttractions = "Tickets & Attractions"
	ProductTravelPackages     = "Travel Packages"

	// CategoryOther marks a free-text entry in either category list.
	CategoryOther = "Other"
)

// Canonical audience categories.
const (
	AudienceDirectConsumers    = "Direct Consumers"
	AudienceTravelAgents       = "Travel Agents"
	AudienceCorporateClients   = "Corporate Clients"
	AudienceOnlineMarketplaces = "Online Marketplaces"
)

var (
	ProductCategories = []string{
		ProductToursExperiences,
		ProductAccommodation,
		ProductTransportTransfers,
		ProductTicketsAttractions,
		ProductTravelPackages,
		CategoryOther,
	}

	AudienceCategories = []string{
		AudienceDirectConsumers,
		AudienceTravelAgents,
		AudienceCorporateClients,
		AudienceOnlineMarketplaces,
		CategoryOther,
	}
)

// CanonicalProductCategory normalises various aliases into canonical product labels.
func CanonicalProductCategory(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	switch strings.ToLower(trimmed) {
	case "tours & experiences", "tours and experiences", "tours", "experiences", "activities":
		return ProductToursExperiences, true
	case "accommodation", "lodging", "stays":
		return ProductAccommodation, true
	case "transport & transfers", "transport and transfers", "transport", "transfers":
		return ProductTransportTransfers, true
	case "tickets & attractions", "tickets and attractions", "tickets", "attractions":
		return ProductTicketsAttractions, true
	case "travel packages", "packages":
		return ProductTravelPackages, true
	case "other":
		return CategoryOther, true
	}

	return "", false
}

// CanonicalAudienceCategory normalizes various aliases into canonical audience labels.
func CanonicalAudienceCategory(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	switch strings.ToLower(trimmed) {
	case "direct consumers", "consumers", "b2c":
		return AudienceDirectConsumers, true
	case "travel agents", "agents":
		return AudienceTravelAgents, true
	case "corporate clients", "corporate", "companies":
		return AudienceCorporateClients, true
	case "online marketplaces", "marketplaces", "ota", "otas":
		return AudienceOnlineMarketplaces, true
	case "other":
		return CategoryOther, true
	}

	return "", false
}

// NormalizeProductList validates, canonicalizes, and de-duplicates product selections.
func NormalizeProductList(values []string) ([]string, error) {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(values))

	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		canonical, ok := CanonicalProductCategory(raw)
		if !ok {
			return nil, fmt.Errorf("unknown product category: %s", raw)
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}

	if len(result) == 0 {
		return nil, errors.New("select at least one product category")
	}

	return result, nil
}

// NormalizeAudienceList validates, canonicalizes, and de-duplicates audience selections.
func NormalizeAudienceList(values []string) ([]string, error) {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(values))

	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		canonical, ok := CanonicalAudienceCategory(raw)
		if !ok {
			return nil, fmt.Errorf("unknown audience category: %s", raw)
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		result = append(result, canonical)
	}

	if len(result) == 0 {
		return nil, errors.New("select at least one audience category")
	}

	return result, nil
}

func containsCategory(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
