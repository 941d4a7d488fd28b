package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "MONGO_URI", "MONGO_DB", "SURVEY_COLLECTION", "PHOTO_BUCKET",
		"MEDIA_BASE_URL", "MONGO_CONNECT_TIMEOUT", "TIMEZONE", "API_ALLOWED_ORIGINS",
		"MESSENGER_GATEWAY_URL", "MESSENGER_GATEWAY_DESTINATION", "MESSENGER_GATEWAY_TIMEOUT",
		"ADMIN_REVIEW_BASE_URL", "FAILED_NOTIFICATION_COLLECTION",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.MongoDatabase != "merchant-pulse" {
		t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, "merchant-pulse")
	}
	if cfg.SurveyCollection != "survey_records" {
		t.Errorf("SurveyCollection = %q, want %q", cfg.SurveyCollection, "survey_records")
	}
	if cfg.PhotoBucket != "survey-uploads" {
		t.Errorf("PhotoBucket = %q, want %q", cfg.PhotoBucket, "survey-uploads")
	}
	if cfg.MediaBaseURL != "" {
		t.Errorf("MediaBaseURL = %q, want empty", cfg.MediaBaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, 10*time.Second)
	}
	if diff := cmp.Diff([]string{"*"}, cfg.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.ServerLog == nil {
		t.Fatal("ServerLog is nil")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MEDIA_BASE_URL", "https://cdn.example.com/media/ ")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("MESSENGER_GATEWAY_TIMEOUT", "500ms")
	t.Setenv("API_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
	if cfg.MediaBaseURL != "https://cdn.example.com/media/" {
		t.Errorf("MediaBaseURL = %q, want trimmed value", cfg.MediaBaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if cfg.MessengerTimeout != 500*time.Millisecond {
		t.Errorf("MessengerTimeout = %v, want 500ms", cfg.MessengerTimeout)
	}
	want := []string{"https://app.example.com", "https://admin.example.com"}
	if diff := cmp.Diff(want, cfg.AllowedOrigins); diff != "" {
		t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback []string
		want     []string
	}{
		{name: "unset", raw: "", fallback: []string{"*"}, want: []string{"*"}},
		{name: "single", raw: "https://a.example.com", fallback: nil, want: []string{"https://a.example.com"}},
		{name: "trims and drops blanks", raw: " a , ,b,", fallback: nil, want: []string{"a", "b"}},
		{name: "only separators", raw: ", ,", fallback: []string{"x"}, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_PARSE_LIST", tt.raw)
			got := parseList("TEST_PARSE_LIST", tt.fallback)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseList(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_OR_DEFAULT", "")
	if got := envOrDefault("TEST_ENV_OR_DEFAULT", "fallback"); got != "fallback" {
		t.Errorf("envOrDefault on empty = %q, want fallback", got)
	}
	t.Setenv("TEST_ENV_OR_DEFAULT", "value")
	if got := envOrDefault("TEST_ENV_OR_DEFAULT", "fallback"); got != "value" {
		t.Errorf("envOrDefault on set = %q, want value", got)
	}
}
