package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS      CORSConfig
	Log       LogConfig
	Session   SessionConfig
	Booking   BookingConfig
	Reports   ReportsConfig
	Reminders RemindersConfig
	Gemini    GeminiConfig
	Analytics AnalyticsConfig
	Exports   ExportsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig describes the assumed single-user deployment identity.
// There is no real authentication; identity headers default to these values.
type SessionConfig struct {
	DefaultUserID string
	DefaultRole   string
}

// BookingConfig tunes booking creation behaviour.
type BookingConfig struct {
	// EnforceConflict makes the venue conflict check atomic with event
	// creation. When false the check is advisory only and an overlapping
	// booking can still be created (legacy behaviour).
	EnforceConflict bool
}

// ReportsConfig governs post-event report submission.
type ReportsConfig struct {
	// RequireApproval rejects report submission unless the event is
	// APPROVED. The legacy behaviour (false) lets a report finalize an
	// event from any prior status.
	RequireApproval bool
}

// RemindersConfig toggles the report-due reminder sweep.
type RemindersConfig struct {
	Enabled bool
}

// GeminiConfig holds the generative AI credential and endpoint tuning.
// An empty APIKey is a defined degraded mode, not an error.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// AnalyticsConfig gates the analytics endpoints.
type AnalyticsConfig struct {
	Enabled bool
}

// ExportsConfig controls asynchronous export generation.
type ExportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Session = SessionConfig{
		DefaultUserID: v.GetString("SESSION_DEFAULT_USER"),
		DefaultRole:   v.GetString("SESSION_DEFAULT_ROLE"),
	}

	cfg.Booking = BookingConfig{
		EnforceConflict: v.GetBool("BOOKING_ENFORCE_CONFLICT"),
	}

	cfg.Reports = ReportsConfig{
		RequireApproval: v.GetBool("REPORT_REQUIRE_APPROVAL"),
	}

	cfg.Reminders = RemindersConfig{
		Enabled: v.GetBool("ENABLE_REPORT_REMINDERS"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:  v.GetString("GEMINI_API_KEY"),
		Model:   v.GetString("GEMINI_MODEL"),
		BaseURL: v.GetString("GEMINI_BASE_URL"),
		Timeout: parseDuration(v.GetString("GEMINI_TIMEOUT"), 30*time.Second),
	}

	cfg.Analytics = AnalyticsConfig{
		Enabled: v.GetBool("ENABLE_ANALYTICS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled:           v.GetBool("ENABLE_EXPORTS"),
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SESSION_DEFAULT_USER", "Current User")
	v.SetDefault("SESSION_DEFAULT_ROLE", "COORDINATOR")

	v.SetDefault("BOOKING_ENFORCE_CONFLICT", true)
	v.SetDefault("REPORT_REQUIRE_APPROVAL", false)
	v.SetDefault("ENABLE_REPORT_REMINDERS", true)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("GEMINI_TIMEOUT", "30s")

	v.SetDefault("ENABLE_ANALYTICS", true)

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
