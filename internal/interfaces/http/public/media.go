package public

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

func (h *Handler) photoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileName := strings.TrimSpace(chi.URLParam(r, "file"))
		if fileName == "" {
			http.NotFound(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		object, err := h.photos.Open(ctx, "survey-photos/"+fileName)
		if err != nil {
			if errors.Is(err, domain.ErrPhotoNotFound) {
				http.NotFound(w, r)
				return
			}
			h.logger.Printf("photo fetch failed file=%s err=%v", fileName, err)
			http.Error(w, "failed to load photo", http.StatusInternalServerError)
			return
		}
		defer object.Reader.Close()

		contentType := object.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		if object.Length > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(object.Length, 10))
		}
		// Photo keys are never reused.
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		if _, err := io.Copy(w, object.Reader); err != nil {
			h.logger.Printf("photo stream interrupted file=%s err=%v", fileName, err)
		}
	}
}
