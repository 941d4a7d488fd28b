package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// SurveyRepository persists survey records in MongoDB.
type SurveyRepository struct {
	surveys *mongo.Collection
}

// NewSurveyRepository binds the repository to the survey record collection.
func NewSurveyRepository(db *mongo.Database, collection string) *SurveyRepository {
	return &SurveyRepository{surveys: db.Collection(collection)}
}

// Insert stores a fresh survey record and returns the server-assigned id.
// Photo fields start as null; AttachPhoto is the only writer for them.
func (r *SurveyRepository) Insert(ctx context.Context, survey domain.Survey) (string, error) {
	doc := newSurveyDocument(survey)
	doc.ID = primitive.NewObjectID()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.surveys.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

// FindByID loads a single survey record.
func (r *SurveyRepository) FindByID(ctx context.Context, id string) (domain.Survey, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return domain.Survey{}, domain.ErrSurveyNotFound
	}

	var doc SurveyDocument
	if err := r.surveys.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Survey{}, domain.ErrSurveyNotFound
		}
		return domain.Survey{}, err
	}
	return mapSurveyDocument(doc), nil
}

// AttachPhoto writes photo_path and photo_url on an existing record in a
// single update. An empty photoURL is stored as null. Missing records are an
// error, never an upsert.
func (r *SurveyRepository) AttachPhoto(ctx context.Context, id, photoPath, photoURL string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrSurveyNotFound
	}

	var urlValue interface{}
	if photoURL != "" {
		urlValue = photoURL
	}
	update := bson.M{"photo_path": photoPath, "photo_url": urlValue}

	result, err := r.surveys.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}

// Find lists survey records matching the filter, newest first, together with
// the total match count before paging.
func (r *SurveyRepository) Find(ctx context.Context, filter application.SurveyFilter, paging application.Paging) ([]domain.Survey, int64, error) {
	mongoFilter := bson.M{}
	if filter.Product != "" {
		mongoFilter["data.profiling.products"] = filter.Product
	}
	if filter.Audience != "" {
		mongoFilter["data.profiling.audience"] = filter.Audience
	}

	teamSize := bson.M{}
	if filter.TeamSizeMin > 0 {
		teamSize["$gte"] = filter.TeamSizeMin
	}
	if filter.TeamSizeMax > 0 {
		teamSize["$lte"] = filter.TeamSizeMax
	}
	if len(teamSize) > 0 {
		mongoFilter["data.profiling.team_size"] = teamSize
	}

	if filter.HasPhoto != nil {
		if *filter.HasPhoto {
			mongoFilter["photo_path"] = bson.M{"$ne": nil}
		} else {
			mongoFilter["photo_path"] = nil
		}
	}

	total, err := r.surveys.CountDocuments(ctx, mongoFilter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64(paging.Page-1) * int64(paging.Limit)
	if skip < 0 {
		skip = 0
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(paging.Limit))

	cursor, err := r.surveys.Find(ctx, mongoFilter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	surveys := make([]domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		surveys = append(surveys, mapSurveyDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return surveys, total, nil
}

// Metrics aggregates headline counts over the whole collection.
func (r *SurveyRepository) Metrics(ctx context.Context) (domain.SurveyMetrics, error) {
	metrics := domain.SurveyMetrics{}

	total, err := r.surveys.CountDocuments(ctx, bson.M{})
	if err != nil {
		return metrics, err
	}
	metrics.TotalSurveys = total

	withPhoto, err := r.surveys.CountDocuments(ctx, bson.M{"photo_path": bson.M{"$ne": nil}})
	if err != nil {
		return metrics, err
	}
	metrics.SurveysWithPhoto = withPhoto

	products, err := r.countCategories(ctx, "$data.profiling.products")
	if err != nil {
		return metrics, err
	}
	metrics.Products = products

	audience, err := r.countCategories(ctx, "$data.profiling.audience")
	if err != nil {
		return metrics, err
	}
	metrics.Audience = audience

	teamSizes, err := r.countTeamSizes(ctx)
	if err != nil {
		return metrics, err
	}
	metrics.TeamSizes = teamSizes

	return metrics, nil
}

// countCategories unwinds a category array field and counts records per
// category value.
func (r *SurveyRepository) countCategories(ctx context.Context, field string) ([]domain.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: field}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.surveys.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make([]domain.CategoryCount, 0)
	for cursor.Next(ctx) {
		var row struct {
			Category string `bson:"_id"`
			Count    int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts = append(counts, domain.CategoryCount{Category: row.Category, Count: row.Count})
	}
	return counts, cursor.Err()
}

var teamSizeBucketLabels = map[int64]string{
	1:   "1-5",
	6:   "6-20",
	21:  "21-50",
	51:  "51-99",
	100: "100+",
}

// countTeamSizes buckets records by team size. The top bucket holds exactly
// the capped value 100, rendered as "100+".
func (r *SurveyRepository) countTeamSizes(ctx context.Context) ([]domain.TeamSizeBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$data.profiling.team_size",
			"boundaries": bson.A{1, 6, 21, 51, 100, 101},
			"default":    -1,
			"output":     bson.M{"count": bson.M{"$sum": 1}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.surveys.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	buckets := make([]domain.TeamSizeBucket, 0)
	for cursor.Next(ctx) {
		var row struct {
			ID    int64 `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		label, ok := teamSizeBucketLabels[row.ID]
		if !ok {
			continue
		}
		buckets = append(buckets, domain.TeamSizeBucket{Label: label, Count: row.Count})
	}
	return buckets, cursor.Err()
}
