package mongo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

func sampleRecord() domain.Survey {
	return domain.Survey{
		CreatedAt: time.Date(2026, time.July, 4, 8, 0, 0, 0, time.UTC),
		Data: domain.SubmissionPayload{
			Profiling: domain.Profiling{
				Products:      []string{domain.ProductToursExperiences, domain.CategoryOther},
				ProductsOther: "Equipment rental",
				Audience:      []string{domain.AudienceDirectConsumers},
				TeamSize:      12,
			},
			PainPoints: domain.PainPoints{
				CustomerEnd: domain.CustomerEndPainPoints{LastMinuteCancellations: true, OtherNote: "midnight reschedules"},
				InternalOps: domain.InternalOpsPainPoints{ManualBookkeeping: true},
				SupplierEnd: domain.SupplierEndPainPoints{PriceNegotiation: true},
			},
		},
	}
}

func TestNewSurveyDocumentLeavesPhotoFieldsNull(t *testing.T) {
	doc := newSurveyDocument(sampleRecord())

	if doc.PhotoPath != nil || doc.PhotoURL != nil {
		t.Fatalf("photo fields = %v / %v, want nil until a photo is attached", doc.PhotoPath, doc.PhotoURL)
	}
}

func TestNewSurveyDocumentCopiesCategorySlices(t *testing.T) {
	record := sampleRecord()
	doc := newSurveyDocument(record)

	record.Data.Profiling.Products[0] = "mutated"
	if doc.Data.Profiling.Products[0] != domain.ProductToursExperiences {
		t.Fatal("document shares the caller's products slice")
	}
}

func TestMapSurveyDocumentRoundTrip(t *testing.T) {
	record := sampleRecord()
	doc := newSurveyDocument(record)
	doc.ID = primitive.NewObjectID()

	restored := mapSurveyDocument(doc)

	if restored.ID != doc.ID.Hex() {
		t.Fatalf("id = %q, want %q", restored.ID, doc.ID.Hex())
	}
	if diff := cmp.Diff(record.Data, restored.Data); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if restored.PhotoPath != "" || restored.PhotoURL != "" {
		t.Fatalf("photo fields = %q / %q, want empty for null documents", restored.PhotoPath, restored.PhotoURL)
	}
}

func TestMapSurveyDocumentDereferencesPhotoFields(t *testing.T) {
	doc := newSurveyDocument(sampleRecord())
	doc.ID = primitive.NewObjectID()
	path := "survey-photos/survey-" + doc.ID.Hex() + "-1700000000000.jpg"
	url := "https://media.voyago.example/" + path
	doc.PhotoPath = &path
	doc.PhotoURL = &url

	restored := mapSurveyDocument(doc)

	if restored.PhotoPath != path || restored.PhotoURL != url {
		t.Fatalf("photo fields = %q / %q", restored.PhotoPath, restored.PhotoURL)
	}
	if !restored.HasPhoto() {
		t.Fatal("HasPhoto should report true once photo_path is set")
	}
}
