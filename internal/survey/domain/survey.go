package domain

import (
	"errors"
	"time"
)

// ErrSurveyNotFound is returned when no survey record matches the requested id.
var ErrSurveyNotFound = errors.New("survey record not found")

// ErrPhotoNotFound is returned when no stored photo matches the requested key.
var ErrPhotoNotFound = errors.New("survey photo not found")

// Profiling is the business profile section of a submission payload.
type Profiling struct {
	Products      []string
	ProductsOther string
	Audience      []string
	AudienceOther string
	TeamSize      int
}

// PainPoints groups the three pain point sections of a submission payload.
type PainPoints struct {
	CustomerEnd CustomerEndPainPoints
	InternalOps InternalOpsPainPoints
	SupplierEnd SupplierEndPainPoints
}

// SubmissionPayload is the reshaped survey content persisted under the
// record's data field.
type SubmissionPayload struct {
	Profiling  Profiling
	PainPoints PainPoints
}

// Survey is a persisted survey record. PhotoPath and PhotoURL stay empty until
// a photo upload succeeds and is attached; PhotoURL may stay empty even then.
type Survey struct {
	ID        string
	CreatedAt time.Time
	Data      SubmissionPayload
	PhotoPath string
	PhotoURL  string
}

// HasPhoto reports whether a stored photo was attached to the record.
func (s Survey) HasPhoto() bool {
	return s.PhotoPath != ""
}

// CategoryCount is one category's occurrence count across all records.
type CategoryCount struct {
	Category string
	Count    int64
}

// TeamSizeBucket is one team size band's occurrence count.
type TeamSizeBucket struct {
	Label string
	Count int64
}

// SurveyMetrics summarises the collected records for the admin dashboard.
type SurveyMetrics struct {
	TotalSurveys     int64
	SurveysWithPhoto int64
	Products         []CategoryCount
	Audience         []CategoryCount
	TeamSizes        []TeamSizeBucket
}
