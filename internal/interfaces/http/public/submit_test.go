package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voyago-labs/merchant-pulse-api/internal/interfaces/http/common"
	surveyapp "github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
)

type fakeSubmissionService struct {
	result   surveyapp.SubmissionResult
	err      error
	commands []surveyapp.SubmitSurveyCommand
}

func (f *fakeSubmissionService) Submit(_ context.Context, cmd surveyapp.SubmitSurveyCommand) (surveyapp.SubmissionResult, error) {
	f.commands = append(f.commands, cmd)
	if f.err != nil {
		return surveyapp.SubmissionResult{}, f.err
	}
	return f.result, nil
}

type photoPart struct {
	fileName    string
	contentType string
	data        []byte
}

func newTestRouter(t *testing.T, service surveyapp.SubmissionService) chi.Router {
	t.Helper()
	handler := NewHandler(Config{
		Logger:      log.New(io.Discard, "", 0),
		Submissions: service,
		HTTPClient:  &http.Client{Timeout: time.Second},
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func newSubmitRequest(t *testing.T, payload string, photo *photoPart) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if payload != "" {
		if err := writer.WriteField("payload", payload); err != nil {
			t.Fatalf("write payload field: %v", err)
		}
	}
	if photo != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, photo.fileName))
		if photo.contentType != "" {
			header.Set("Content-Type", photo.contentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create photo part: %v", err)
		}
		if _, err := part.Write(photo.data); err != nil {
			t.Fatalf("write photo part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/surveys", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func validPayload() string {
	return `{"products":["Tours & Experiences"],"audience":["Direct Consumers"],"teamSize":12,"painPoints":{"customerEnd":{"lastMinuteCancellations":true},"internalOps":{"manualBookkeeping":true},"supplierEnd":{}},"consent":true}`
}

func jpegBytes() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
}

func heicBytes() []byte {
	header := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypheic")...)
	return append(header, make([]byte, 64)...)
}

func TestSubmitSurveyWithoutPhoto(t *testing.T) {
	service := &fakeSubmissionService{result: surveyapp.SubmissionResult{
		SurveyID: "665f1f77bcf86cd799439011",
		State:    surveyapp.StateDone,
	}}
	router := newTestRouter(t, service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newSubmitRequest(t, validPayload(), nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp submitSurveyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.ID != "665f1f77bcf86cd799439011" || resp.State != string(surveyapp.StateDone) {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.PhotoPath != "" || resp.PhotoURL != "" {
		t.Fatalf("photo fields should be absent, got %+v", resp)
	}

	if len(service.commands) != 1 {
		t.Fatalf("Submit called %d times, want 1", len(service.commands))
	}
	form := service.commands[0].Form
	if form.Photo != nil {
		t.Fatal("form should carry no photo")
	}
	if form.TeamSize != 12 {
		t.Fatalf("TeamSize = %d, want 12", form.TeamSize)
	}
	if len(form.Products) != 1 || form.Products[0] != "Tours & Experiences" {
		t.Fatalf("Products = %v", form.Products)
	}
	if !form.CustomerEnd.LastMinuteCancellations || !form.InternalOps.ManualBookkeeping {
		t.Fatalf("pain point flags lost: %+v", form)
	}
}

func TestSubmitSurveyWithPhoto(t *testing.T) {
	service := &fakeSubmissionService{result: surveyapp.SubmissionResult{
		SurveyID:  "665f1f77bcf86cd799439011",
		State:     surveyapp.StateDone,
		PhotoPath: "survey-photos/survey-665f1f77bcf86cd799439011-1700000000000.jpg",
		PhotoURL:  "https://media.voyago.example/survey-photos/survey-665f1f77bcf86cd799439011-1700000000000.jpg",
	}}
	router := newTestRouter(t, service)

	photo := &photoPart{fileName: "trip.jpg", contentType: "image/jpeg", data: jpegBytes()}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newSubmitRequest(t, validPayload(), photo))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp submitSurveyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.PhotoPath == "" || resp.PhotoURL == "" {
		t.Fatalf("photo fields missing in %+v", resp)
	}

	if len(service.commands) != 1 {
		t.Fatalf("Submit called %d times, want 1", len(service.commands))
	}
	attachment := service.commands[0].Form.Photo
	if attachment == nil {
		t.Fatal("form should carry the photo")
	}
	if attachment.FileName != "trip.jpg" {
		t.Fatalf("FileName = %q", attachment.FileName)
	}
	if attachment.ContentType != "image/jpeg" {
		t.Fatalf("ContentType = %q, want image/jpeg", attachment.ContentType)
	}
	if !bytes.Equal(attachment.Data, jpegBytes()) {
		t.Fatal("photo bytes altered in transit")
	}
}

func TestSubmitSurveyAcceptsDeclaredHeic(t *testing.T) {
	service := &fakeSubmissionService{result: surveyapp.SubmissionResult{
		SurveyID: "665f1f77bcf86cd799439011",
		State:    surveyapp.StateDone,
	}}
	router := newTestRouter(t, service)

	photo := &photoPart{fileName: "storefront.heic", contentType: "image/heic", data: heicBytes()}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newSubmitRequest(t, validPayload(), photo))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if got := service.commands[0].Form.Photo.ContentType; got != "image/heic" {
		t.Fatalf("ContentType = %q, want image/heic", got)
	}
}

func TestSubmitSurveyBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		photo   *photoPart
		wantErr string
	}{
		{
			name:    "missing payload field",
			payload: "",
			wantErr: "payload field is required",
		},
		{
			name:    "malformed payload",
			payload: `{"products":`,
			wantErr: "invalid payload",
		},
		{
			name:    "unknown payload key",
			payload: `{"products":["Tours & Experiences"],"audience":["Direct Consumers"],"teamSize":3,"painPoints":{"customerEnd":{},"internalOps":{},"supplierEnd":{}},"consent":true,"mystery":1}`,
			wantErr: "invalid payload",
		},
		{
			name:    "consent withheld",
			payload: `{"products":["Tours & Experiences"],"audience":["Direct Consumers"],"teamSize":3,"painPoints":{"customerEnd":{},"internalOps":{},"supplierEnd":{}},"consent":false}`,
			wantErr: "consent",
		},
		{
			name:    "unknown product category",
			payload: `{"products":["Steamships"],"audience":["Direct Consumers"],"teamSize":3,"painPoints":{"customerEnd":{},"internalOps":{},"supplierEnd":{}},"consent":true}`,
			wantErr: "unknown product category",
		},
		{
			name:    "other product without description",
			payload: `{"products":["Other"],"audience":["Direct Consumers"],"teamSize":3,"painPoints":{"customerEnd":{},"internalOps":{},"supplierEnd":{}},"consent":true}`,
			wantErr: "productsOther",
		},
		{
			name:    "team size out of range",
			payload: `{"products":["Tours & Experiences"],"audience":["Direct Consumers"],"teamSize":101,"painPoints":{"customerEnd":{},"internalOps":{},"supplierEnd":{}},"consent":true}`,
			wantErr: "teamSize",
		},
		{
			name:    "free text too long",
			payload: fmt.Sprintf(`{"products":["Tours & Experiences"],"audience":["Direct Consumers"],"teamSize":3,"productsOther":%q,"painPoints":{"customerEnd":{},"internalOps":{},"supplierEnd":{}},"consent":true}`, strings.Repeat("x", common.MaxFreeTextRunes+1)),
			wantErr: "characters or fewer",
		},
		{
			name:    "photo is not an image",
			payload: validPayload(),
			photo:   &photoPart{fileName: "notes.txt", contentType: "image/jpeg", data: []byte("just some notes")},
			wantErr: "unsupported photo type",
		},
		{
			name:    "photo part empty",
			payload: validPayload(),
			photo:   &photoPart{fileName: "trip.jpg", contentType: "image/jpeg", data: []byte{}},
			wantErr: "photo part is empty",
		},
		{
			name:    "photo too large",
			payload: validPayload(),
			photo:   &photoPart{fileName: "huge.jpg", contentType: "image/jpeg", data: append(jpegBytes(), make([]byte, common.MaxPhotoBytes)...)},
			wantErr: "photo exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeSubmissionService{}
			router := newTestRouter(t, service)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, newSubmitRequest(t, tt.payload, tt.photo))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if !strings.Contains(body["error"], tt.wantErr) {
				t.Fatalf("error = %q, want substring %q", body["error"], tt.wantErr)
			}
			if len(service.commands) != 0 {
				t.Fatalf("Submit should not run on bad input, got %d calls", len(service.commands))
			}
		})
	}
}

func TestSubmitSurveyReportsPipelineFailure(t *testing.T) {
	service := &fakeSubmissionService{err: &surveyapp.SubmissionError{
		State:    surveyapp.StateFailedUpload,
		SurveyID: "665f1f77bcf86cd799439011",
		Err:      errors.New("bucket unavailable"),
	}}
	router := newTestRouter(t, service)

	photo := &photoPart{fileName: "trip.jpg", contentType: "image/jpeg", data: jpegBytes()}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newSubmitRequest(t, validPayload(), photo))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusBadGateway, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["state"] != string(surveyapp.StateFailedUpload) {
		t.Fatalf("state = %q, want %q", body["state"], surveyapp.StateFailedUpload)
	}
	if body["error"] == "" {
		t.Fatal("error message missing")
	}
}

func TestSubmitSurveyUnexpectedFailure(t *testing.T) {
	service := &fakeSubmissionService{err: errors.New("boom")}
	router := newTestRouter(t, service)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, newSubmitRequest(t, validPayload(), nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestResolvePhotoContentType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		want     string
		wantOK   bool
	}{
		{name: "jpeg by sniff", data: jpegBytes(), declared: "application/octet-stream", want: "image/jpeg", wantOK: true},
		{name: "png by sniff", data: append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...), declared: "", want: "image/png", wantOK: true},
		{name: "webp by sniff", data: append([]byte("RIFF\x00\x00\x00\x00WEBPVP8 "), make([]byte, 16)...), declared: "", want: "image/webp", wantOK: true},
		{name: "heic by declaration", data: heicBytes(), declared: "image/heic", want: "image/heic", wantOK: true},
		{name: "heif with parameters", data: heicBytes(), declared: "image/heif; profile=a", want: "image/heif", wantOK: true},
		{name: "text rejected", data: []byte("plain text body"), declared: "image/jpeg", wantOK: false},
		{name: "octet stream without declaration rejected", data: heicBytes(), declared: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolvePhotoContentType(tt.data, tt.declared)
			if ok != tt.wantOK {
				t.Fatalf("ok = %t, want %t (got type %q)", ok, tt.wantOK, got)
			}
			if tt.wantOK && got != tt.want {
				t.Fatalf("contentType = %q, want %q", got, tt.want)
			}
		})
	}
}
