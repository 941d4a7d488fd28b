package main

import (
	"bytes"
	"context"
	"flag"
	"image"
	"image/color"
	"image/jpeg"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyago-labs/merchant-pulse-api/internal/infrastructure/gridfs"
	mongodoc "github.com/voyago-labs/merchant-pulse-api/internal/infrastructure/mongo"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

type seedOptions struct {
	mongoURI    string
	database    string
	surveyCount int
	withPhotos  bool
	drop        bool
	randomSeed  int64
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment overrides from .env")
	}

	opts := parseFlags()

	surveyCollection := envOrDefault("SURVEY_COLLECTION", "survey_records")
	photoBucket := envOrDefault("PHOTO_BUCKET", "survey-uploads")
	mediaBaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("MEDIA_BASE_URL")), "/")
	if mediaBaseURL == "" {
		log.Println("MEDIA_BASE_URL is not set, seeded photo URLs will be left null")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.mongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(opts.database)

	if opts.drop {
		dropCollections(ctx, db, surveyCollection, photoBucket)
		log.Printf("dropped existing collections")
	}

	if err := ensureIndexes(ctx, db, surveyCollection); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	surveys := mongodoc.NewSurveyRepository(db, surveyCollection)
	photos, err := gridfs.NewPhotoStore(db, photoBucket, mediaBaseURL)
	if err != nil {
		log.Fatalf("failed to open photo bucket %s: %v", photoBucket, err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	photoCount := 0
	for i := 0; i < opts.surveyCount; i++ {
		form := randomForm(rng)
		if err := form.Validate(); err != nil {
			log.Fatalf("generated an invalid form: %v", err)
		}

		created := time.Now().UTC().Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
		id, err := surveys.Insert(ctx, domain.Survey{
			CreatedAt: created,
			Data:      application.BuildPayload(form),
		})
		if err != nil {
			log.Fatalf("failed to insert survey record: %v", err)
		}

		if !opts.withPhotos || rng.Intn(5) >= 3 {
			continue
		}

		data, err := makePhotoJPEG(rng)
		if err != nil {
			log.Fatalf("failed to encode a sample photo: %v", err)
		}
		uploaded := created.Add(time.Duration(rng.Intn(300)) * time.Second)
		key := application.PhotoKey(id, uploaded, "image/jpeg")
		path, err := photos.Upload(ctx, key, "image/jpeg", data)
		if err != nil {
			log.Fatalf("failed to upload sample photo %s: %v", key, err)
		}
		url, err := photos.PublicURL(path)
		if err != nil {
			url = ""
		}
		if err := surveys.AttachPhoto(ctx, id, path, url); err != nil {
			log.Fatalf("failed to attach photo to record %s: %v", id, err)
		}
		photoCount++
	}

	log.Printf("seed complete: surveys=%d photos=%d", opts.surveyCount, photoCount)
	log.Printf("Mongo: %s / %s", opts.mongoURI, opts.database)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.mongoURI, "uri", envOrDefault("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	flag.StringVar(&opts.database, "db", envOrDefault("MONGO_DB", "merchant-pulse"), "database name")
	flag.IntVar(&opts.surveyCount, "count", 25, "number of survey records to insert")
	flag.BoolVar(&opts.withPhotos, "with-photos", true, "attach a generated photo to a share of the records")
	flag.BoolVar(&opts.drop, "drop", true, "drop the survey collection and photo bucket before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible runs")
	flag.Parse()

	if opts.surveyCount <= 0 {
		log.Fatal("count must be at least 1")
	}
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, surveyCollection, photoBucket string) {
	// GridFS keeps its blobs in the bucket's files and chunks collections.
	names := []string{surveyCollection, photoBucket + ".files", photoBucket + ".chunks"}
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: failed to drop collection %s: %v", name, err)
		}
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database, surveyCollection string) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_survey_created"),
		},
		{
			Keys:    bson.D{{Key: "data.profiling.products", Value: 1}},
			Options: options.Index().SetName("idx_survey_products"),
		},
		{
			Keys:    bson.D{{Key: "data.profiling.team_size", Value: 1}},
			Options: options.Index().SetName("idx_survey_team_size"),
		},
	}
	_, err := db.Collection(surveyCollection).Indexes().CreateMany(ctx, indexes)
	return err
}

func randomForm(rng *rand.Rand) domain.FormState {
	form := domain.FormState{
		Products: pickUnique(rng, productPool, 1+rng.Intn(2)),
		Audience: pickUnique(rng, audiencePool, 1+rng.Intn(2)),
		TeamSize: randomTeamSize(rng),
	}
	if rng.Intn(8) == 0 {
		form.Products = append(form.Products, domain.CategoryOther)
		form.ProductsOther = productOtherPool[rng.Intn(len(productOtherPool))]
	}
	if rng.Intn(10) == 0 {
		form.Audience = append(form.Audience, domain.CategoryOther)
		form.AudienceOther = audienceOtherPool[rng.Intn(len(audienceOtherPool))]
	}

	form.CustomerEnd = domain.CustomerEndPainPoints{
		LastMinuteCancellations: chance(rng, 55),
		PaymentCollection:       chance(rng, 40),
		LanguageBarriers:        chance(rng, 30),
		SeasonalSwings:          chance(rng, 50),
	}
	if chance(rng, 20) {
		form.CustomerEnd.OtherNote = customerNotePool[rng.Intn(len(customerNotePool))]
	}

	form.InternalOps = domain.InternalOpsPainPoints{
		ManualBookkeeping: chance(rng, 45),
		StaffScheduling:   chance(rng, 35),
		InventoryTracking: chance(rng, 25),
		MarketingReach:    chance(rng, 40),
	}
	if chance(rng, 15) {
		form.InternalOps.OtherNote = internalNotePool[rng.Intn(len(internalNotePool))]
	}

	form.SupplierEnd = domain.SupplierEndPainPoints{
		SupplierAvailability: chance(rng, 35),
		PriceNegotiation:     chance(rng, 30),
		QualityControl:       chance(rng, 20),
		ContractPaperwork:    chance(rng, 25),
	}
	if chance(rng, 15) {
		form.SupplierEnd.OtherNote = supplierNotePool[rng.Intn(len(supplierNotePool))]
	}

	return form
}

// randomTeamSize skews towards small teams the way real survey data does.
func randomTeamSize(rng *rand.Rand) int {
	switch roll := rng.Intn(100); {
	case roll < 35:
		return 1 + rng.Intn(5)
	case roll < 65:
		return 6 + rng.Intn(15)
	case roll < 85:
		return 21 + rng.Intn(30)
	case roll < 95:
		return 51 + rng.Intn(49)
	default:
		return domain.MaxTeamSize
	}
}

func chance(rng *rand.Rand, percent int) bool {
	return rng.Intn(100) < percent
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count >= len(source) {
		cp := make([]string, len(source))
		copy(cp, source)
		return cp
	}
	seen := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := rng.Intn(len(source))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		result = append(result, source[idx])
	}
	return result
}

// makePhotoJPEG encodes a small solid-colour JPEG so seeded records carry a
// blob the media endpoint can actually serve.
func makePhotoJPEG(rng *rand.Rand) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	fill := color.RGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255}
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	productPool = []string{
		domain.ProductToursExperiences,
		domain.ProductAccommodation,
		domain.ProductTransportTransfers,
		domain.ProductTicketsAttractions,
		domain.ProductTravelPackages,
	}

	audiencePool = []string{
		domain.AudienceDirectConsumers,
		domain.AudienceTravelAgents,
		domain.AudienceCorporateClients,
		domain.AudienceOnlineMarketplaces,
	}

	productOtherPool = []string{
		"Equipment rental",
		"Travel insurance add-ons",
		"Photography sessions",
	}

	audienceOtherPool = []string{
		"School groups",
		"Cruise lines",
		"Destination wedding planners",
	}

	customerNotePool = []string{
		"No-shows spike around public holidays.",
		"Refund requests take days to reconcile.",
		"Guests ask for itinerary changes at midnight.",
	}

	internalNotePool = []string{
		"Branch spreadsheets drift out of sync every week.",
		"Roster changes still travel through a group chat.",
		"Invoices get retyped into two different systems.",
	}

	supplierNotePool = []string{
		"Boat operators confirm capacity only a day ahead.",
		"Rate cards arrive as photographed paper sheets.",
		"Peak-season allotments get cut without notice.",
	}
)
