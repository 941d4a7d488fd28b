package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// SubmissionState identifies a stage of the submission pipeline or its
// terminal outcome.
type SubmissionState string

// The pipeline advances inserting -> uploading -> attaching -> done, skipping
// the photo stages when no photo is attached. Each transient stage has a
// matching terminal failure state; there is no retry and no rollback, so a
// failed stage leaves whatever the earlier stages persisted in place.
const (
	StateIdle         SubmissionState = "idle"
	StateInserting    SubmissionState = "inserting"
	StateUploading    SubmissionState = "uploading"
	StateAttaching    SubmissionState = "attaching"
	StateDone         SubmissionState = "done"
	StateFailedInsert SubmissionState = "failed_insert"
	StateFailedUpload SubmissionState = "failed_upload"
	StateFailedAttach SubmissionState = "failed_attach"
)

// failureStateFor maps a transient stage to its terminal failure state.
func failureStateFor(state SubmissionState) SubmissionState {
	switch state {
	case StateInserting:
		return StateFailedInsert
	case StateUploading:
		return StateFailedUpload
	case StateAttaching:
		return StateFailedAttach
	default:
		return state
	}
}

// SubmissionError wraps a stage failure with the terminal state and any record
// id obtained before the failure.
type SubmissionError struct {
	State    SubmissionState
	SurveyID string
	Err      error
}

func (e *SubmissionError) Error() string {
	if e.SurveyID != "" {
		return fmt.Sprintf("submission %s: %s: %v", e.SurveyID, e.State, e.Err)
	}
	return fmt.Sprintf("submission: %s: %v", e.State, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

const photoKeyPrefix = "survey-photos"

// PhotoKey builds the storage key for a record's photo. The record id and the
// upload instant make the key unique per submission attempt.
func PhotoKey(surveyID string, uploadedAt time.Time, contentType string) string {
	return fmt.Sprintf("%s/survey-%s-%d%s", photoKeyPrefix, surveyID, uploadedAt.UnixMilli(), photoExtension(contentType))
}

func photoExtension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ".bin"
	}
}

// NewSubmissionService wires the submission pipeline to its record and blob
// stores.
func NewSubmissionService(surveys SurveyRepository, photos PhotoStore, logger *log.Logger) SubmissionService {
	return &submissionService{surveys: surveys, photos: photos, logger: logger}
}

type submissionService struct {
	surveys SurveyRepository
	photos  PhotoStore
	logger  *log.Logger
}

// Submit runs build, insert, upload, resolve, attach in order. Stages after a
// failed one never run. A record inserted before a later failure is kept, as
// is a blob uploaded before a failed attach.
func (s *submissionService) Submit(ctx context.Context, cmd SubmitSurveyCommand) (SubmissionResult, error) {
	payload := BuildPayload(cmd.Form)

	state := StateInserting
	record := domain.Survey{
		CreatedAt: time.Now().UTC(),
		Data:      payload,
	}
	id, err := s.surveys.Insert(ctx, record)
	if err != nil {
		return s.fail(state, "", fmt.Errorf("insert survey record: %w", err))
	}

	if cmd.Form.Photo == nil {
		return SubmissionResult{SurveyID: id, State: StateDone}, nil
	}

	state = StateUploading
	key := PhotoKey(id, time.Now(), cmd.Form.Photo.ContentType)
	path, err := s.photos.Upload(ctx, key, cmd.Form.Photo.ContentType, cmd.Form.Photo.Data)
	if err != nil {
		return s.fail(state, id, fmt.Errorf("upload photo %s: %w", key, err))
	}

	url, err := s.photos.PublicURL(path)
	if err != nil {
		// Not a submission failure: attach proceeds with an empty URL.
		s.logger.Printf("photo %s stored but public URL unresolved: %v", path, err)
		url = ""
	}

	state = StateAttaching
	if err := s.surveys.AttachPhoto(ctx, id, path, url); err != nil {
		return s.fail(state, id, fmt.Errorf("attach photo to record %s: %w", id, err))
	}

	return SubmissionResult{SurveyID: id, State: StateDone, PhotoPath: path, PhotoURL: url}, nil
}

func (s *submissionService) fail(state SubmissionState, surveyID string, err error) (SubmissionResult, error) {
	failed := failureStateFor(state)
	return SubmissionResult{SurveyID: surveyID, State: failed},
		&SubmissionError{State: failed, SurveyID: surveyID, Err: err}
}
