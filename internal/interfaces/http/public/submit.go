package public

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/voyago-labs/merchant-pulse-api/internal/interfaces/http/common"
	surveyapp "github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// submitTimeout bounds one submission run including the photo upload.
const submitTimeout = 30 * time.Second

func (h *Handler) surveySubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxSubmitRequestBody)

		if err := r.ParseMultipartForm(common.MaxSubmitRequestBody); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "invalid or oversized multipart payload"})
			return
		}

		payloadField := r.FormValue("payload")
		if strings.TrimSpace(payloadField) == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "payload field is required"})
			return
		}

		var req submitSurveyRequest
		decoder := json.NewDecoder(strings.NewReader(payloadField))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("invalid payload: %v", err),
			})
			return
		}

		if err := req.validate(); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		products, err := domain.NormalizeProductList(req.Products)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		audience, err := domain.NormalizeAudienceList(req.Audience)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		photo, err := h.readPhotoPart(r)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		form := req.toFormState(products, audience, photo)
		if err := form.Validate(); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
		defer cancel()

		result, err := h.submissions.Submit(ctx, surveyapp.SubmitSurveyCommand{Form: form})
		if err != nil {
			var submissionErr *surveyapp.SubmissionError
			if errors.As(err, &submissionErr) {
				h.logger.Printf("survey submission failed state=%s err=%v", submissionErr.State, err)
				common.WriteJSON(h.logger, w, http.StatusBadGateway, map[string]string{
					"error": "survey submission failed",
					"state": string(submissionErr.State),
				})
				return
			}
			h.logger.Printf("survey submission failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "survey submission failed"})
			return
		}

		go h.notifySurveyReceipt(context.Background(), result, form)

		common.WriteJSON(h.logger, w, http.StatusCreated, submitSurveyResponse{
			Status:    "ok",
			ID:        result.SurveyID,
			State:     string(result.State),
			PhotoPath: result.PhotoPath,
			PhotoURL:  result.PhotoURL,
		})
	}
}

// readPhotoPart extracts the optional photo upload. A missing part is fine;
// an unreadable, empty, oversized or non-image part is a client error.
func (h *Handler) readPhotoPart(r *http.Request) (*domain.PhotoAttachment, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("photo part is unreadable")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, common.MaxPhotoBytes+1))
	if err != nil {
		return nil, errors.New("photo part is unreadable")
	}
	if len(data) == 0 {
		return nil, errors.New("photo part is empty")
	}
	if len(data) > common.MaxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds the %d MiB limit", common.MaxPhotoBytes>>20)
	}

	contentType, ok := resolvePhotoContentType(data, header.Header.Get("Content-Type"))
	if !ok {
		return nil, fmt.Errorf("unsupported photo type %s", contentType)
	}

	return &domain.PhotoAttachment{
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// resolvePhotoContentType admits JPEG, PNG and WebP by sniffing the upload
// bytes. HEIC sniffs as an opaque stream, so it is admitted on the declared
// type instead.
func resolvePhotoContentType(data []byte, declared string) (string, bool) {
	detected := http.DetectContentType(data)
	switch detected {
	case "image/jpeg", "image/png", "image/webp":
		return detected, true
	}

	declared = strings.ToLower(strings.TrimSpace(declared))
	if cut, _, found := strings.Cut(declared, ";"); found {
		declared = strings.TrimSpace(cut)
	}
	if detected == "application/octet-stream" && (declared == "image/heic" || declared == "image/heif") {
		return declared, true
	}
	return detected, false
}
