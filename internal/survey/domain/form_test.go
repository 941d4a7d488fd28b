package domain

import (
	"errors"
	"strings"
	"testing"
)

func validFormState() FormState {
	return FormState{
		Products: []string{ProductToursExperiences},
		Audience: []string{AudienceDirectConsumers},
		TeamSize: 12,
	}
}

func TestFormStateValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*FormState)
		wantField string
	}{
		{name: "valid", mutate: func(*FormState) {}},
		{
			name:      "no products",
			mutate:    func(f *FormState) { f.Products = nil },
			wantField: "products",
		},
		{
			name:      "unknown product",
			mutate:    func(f *FormState) { f.Products = []string{"Cruises"} },
			wantField: "products",
		},
		{
			name:      "other product without text",
			mutate:    func(f *FormState) { f.Products = append(f.Products, CategoryOther) },
			wantField: "productsOther",
		},
		{
			name: "other product with blank text",
			mutate: func(f *FormState) {
				f.Products = append(f.Products, CategoryOther)
				f.ProductsOther = "   "
			},
			wantField: "productsOther",
		},
		{
			name: "other product with text",
			mutate: func(f *FormState) {
				f.Products = append(f.Products, CategoryOther)
				f.ProductsOther = "Equipment rental"
			},
		},
		{
			name:      "no audience",
			mutate:    func(f *FormState) { f.Audience = nil },
			wantField: "audience",
		},
		{
			name:      "other audience without text",
			mutate:    func(f *FormState) { f.Audience = append(f.Audience, CategoryOther) },
			wantField: "audienceOther",
		},
		{
			name: "other audience with text",
			mutate: func(f *FormState) {
				f.Audience = append(f.Audience, CategoryOther)
				f.AudienceOther = "Cruise lines"
			},
		},
		{
			name:      "team size below minimum",
			mutate:    func(f *FormState) { f.TeamSize = 0 },
			wantField: "teamSize",
		},
		{
			name:      "team size above maximum",
			mutate:    func(f *FormState) { f.TeamSize = 101 },
			wantField: "teamSize",
		},
		{
			name:   "team size at upper bound",
			mutate: func(f *FormState) { f.TeamSize = 100 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validFormState()
			tt.mutate(&form)

			err := form.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", vErr.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Validate() message %q does not name field %q", err.Error(), tt.wantField)
			}
		})
	}
}

func TestSurveyHasPhoto(t *testing.T) {
	var survey Survey
	if survey.HasPhoto() {
		t.Error("HasPhoto() on empty record = true, want false")
	}
	survey.PhotoPath = "survey-photos/survey-abc-1.jpg"
	if !survey.HasPhoto() {
		t.Error("HasPhoto() with path = false, want true")
	}
}
