package public

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/voyago-labs/merchant-pulse-api/internal/interfaces/http/common"
	surveyapp "github.com/voyago-labs/merchant-pulse-api/internal/survey/application"
	"github.com/voyago-labs/merchant-pulse-api/internal/survey/domain"
)

// notifySurveyReceipt pushes a submission notice to the ops messenger. One
// attempt only; a failure is recorded for later replay and never surfaces to
// the submitting client.
func (h *Handler) notifySurveyReceipt(ctx context.Context, result surveyapp.SubmissionResult, form domain.FormState) {
	if ctx == nil {
		ctx = context.Background()
	}

	destination := strings.TrimSpace(h.messengerDestination)
	if destination == "" || strings.TrimSpace(h.messengerEndpoint) == "" {
		return
	}

	message := buildSurveyReceiptMessage(h.adminReviewBaseURL, result, form)
	eventID := uuid.NewString()
	if err := h.sendMessengerMessage(ctx, destination, eventID, message); err != nil {
		if h.logger != nil {
			h.logger.Printf("survey receipt notification failed: %v", err)
		}
		h.persistNotificationFailure(ctx, eventID, destination, result.SurveyID, message, err)
	}
}

func buildSurveyReceiptMessage(adminBaseURL string, result surveyapp.SubmissionResult, form domain.FormState) string {
	var builder strings.Builder
	builder.WriteString("New merchant survey received.\n")
	builder.WriteString(fmt.Sprintf("- Products: %s\n", summarizeCategories(form.Products)))
	builder.WriteString(fmt.Sprintf("- Audience: %s\n", summarizeCategories(form.Audience)))
	builder.WriteString(fmt.Sprintf("- Team size: %s\n", common.TeamSizeLabel(form.TeamSize)))
	if flagged := countPainPoints(form); flagged > 0 {
		builder.WriteString(fmt.Sprintf("- Pain points flagged: %d\n", flagged))
	}
	if result.PhotoPath != "" {
		builder.WriteString("- Photo: attached\n")
	}
	if result.SurveyID != "" && strings.TrimSpace(adminBaseURL) != "" {
		builder.WriteString(fmt.Sprintf("Review: %s/%s\n", strings.TrimRight(adminBaseURL, "/"), result.SurveyID))
	}
	return builder.String()
}

// summarizeCategories keeps messenger lines short: the first two entries plus
// a remainder count.
func summarizeCategories(categories []string) string {
	if len(categories) == 0 {
		return "-"
	}
	if len(categories) <= 2 {
		return strings.Join(categories, " / ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(categories[:2], " / "), len(categories)-2)
}

func countPainPoints(form domain.FormState) int {
	count := 0
	for _, flagged := range []bool{
		form.CustomerEnd.LastMinuteCancellations,
		form.CustomerEnd.PaymentCollection,
		form.CustomerEnd.LanguageBarriers,
		form.CustomerEnd.SeasonalSwings,
		form.InternalOps.ManualBookkeeping,
		form.InternalOps.StaffScheduling,
		form.InternalOps.InventoryTracking,
		form.InternalOps.MarketingReach,
		form.SupplierEnd.SupplierAvailability,
		form.SupplierEnd.PriceNegotiation,
		form.SupplierEnd.QualityControl,
		form.SupplierEnd.ContractPaperwork,
	} {
		if flagged {
			count++
		}
	}
	return count
}

func (h *Handler) persistNotificationFailure(ctx context.Context, eventID, destination, surveyID, message string, cause error) {
	if h.failedNotifications == nil {
		return
	}

	doc := bson.M{
		"_id":         eventID,
		"target":      "survey_receipt",
		"destination": destination,
		"payload": bson.M{
			"survey_id": surveyID,
			"text":      message,
		},
		"error":      cause.Error(),
		"status":     "pending",
		"created_at": time.Now().UTC(),
	}
	if _, err := h.failedNotifications.InsertOne(ctx, doc); err != nil && h.logger != nil {
		h.logger.Printf("failed to record notification failure: %v", err)
	}
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, eventID, bodyText string) error {
	payload := map[string]any{
		"destination": destination,
		"eventId":     eventID,
		"text":        bodyText,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("build messenger payload: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build messenger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send messenger request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("messenger rejected message: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}
