package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	PingCollection               string
	SurveyCollection             string
	PhotoBucket                  string
	MediaBaseURL                 string
	Timeout                      time.Duration
	Timezone                     string
	ServerLog                    *log.Logger
	MessengerEndpoint            string
	MessengerDestination         string
	MessengerTimeout             time.Duration
	AdminReviewBaseURL           string
	AllowedOrigins               []string
	FailedNotificationCollection string
}

// Load reads environment variables and returns a fully populated Config.
// A .env file in the working directory is merged in first when present.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment overrides from .env")
	}

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	messengerEndpoint := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL"))
	if messengerEndpoint == "" {
		messengerEndpoint = "http://messenger-gateway:3000"
	}

	messengerDestination := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_DESTINATION"))
	if messengerDestination == "" {
		messengerDestination = "slack"
	}

	messengerTimeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			messengerTimeout = parsed
		}
	}

	allowedOrigins := parseList("API_ALLOWED_ORIGINS", []string{"*"})
	adminReviewBaseURL := strings.TrimSpace(os.Getenv("ADMIN_REVIEW_BASE_URL"))

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "merchant-pulse"),
		SurveyCollection:             envOrDefault("SURVEY_COLLECTION", "survey_records"),
		PhotoBucket:                  envOrDefault("PHOTO_BUCKET", "survey-uploads"),
		PingCollection:               envOrDefault("PING_COLLECTION", "pings"),
		MediaBaseURL:                 strings.TrimSpace(os.Getenv("MEDIA_BASE_URL")),
		Timeout:                      timeout,
		Timezone:                     envOrDefault("TIMEZONE", "UTC"),
		ServerLog:                    log.New(os.Stdout, "[merchant-pulse-api] ", log.LstdFlags|log.Lshortfile),
		MessengerEndpoint:            messengerEndpoint,
		MessengerDestination:         messengerDestination,
		MessengerTimeout:             messengerTimeout,
		AdminReviewBaseURL:           adminReviewBaseURL,
		AllowedOrigins:               allowedOrigins,
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
	}

	cfg.ServerLog.Printf("loaded config: mediaBaseURL=%q messengerEndpoint=%q destination=%q", cfg.MediaBaseURL, messengerEndpoint, messengerDestination)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
