package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds the dashboard can read from.
const (
	SourceFirebase = "firebase"
	SourceMongoDB  = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Source    SourceConfig
	Firebase  FirebaseConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
	Reporting ReportingConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// SourceConfig selects where raw hospital records are read from.
type SourceConfig struct {
	Kind string
}

// FirebaseConfig points at the realtime database REST endpoint.
type FirebaseConfig struct {
	DatabaseURL string
	AuthToken   string
	Timeout     time.Duration
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration required to export snapshots to Google Sheets.
// Export is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API used by the weekly digest.
// The digest is disabled when AccessToken is empty.
type WhatsAppConfig struct {
	AccessToken     string
	PhoneNumberID   string
	BaseURL         string
	APIVersion      string
	DigestRecipient string
	// VerifyToken enables the inbound command webhook when set.
	VerifyToken    string
	AllowedSenders []string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	SnapshotSchedule string
	DigestSchedule   string
	DigestTimeline   string
	Timezone         string
}

// AnalyticsConfig configures the dashboard pipeline.
type AnalyticsConfig struct {
	SettingsPath string
	RandomSeed   int64
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := getenvDuration("FIREBASE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	seed, err := getenvInt64("ANALYTICS_RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Source: SourceConfig{
			Kind: getenvWithDefault("DATA_SOURCE", SourceFirebase),
		},
		Firebase: FirebaseConfig{
			DatabaseURL: os.Getenv("FIREBASE_DATABASE_URL"),
			AuthToken:   os.Getenv("FIREBASE_AUTH_TOKEN"),
			Timeout:     timeout,
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "hospital"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_SNAPSHOT_ID"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:     os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:   os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:         getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:      getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			DigestRecipient: os.Getenv("WHATSAPP_DIGEST_RECIPIENT"),
			VerifyToken:     os.Getenv("WHATSAPP_VERIFY_TOKEN"),
			AllowedSenders:  splitList(os.Getenv("WHATSAPP_ALLOWED_SENDERS")),
		},
		Reporting: ReportingConfig{
			SnapshotSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 23 * * *"),
			DigestSchedule:   getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 8 * * 1"),
			DigestTimeline:   getenvWithDefault("DIGEST_TIMELINE", "week"),
			Timezone:         getenvWithDefault("TIMEZONE", "Asia/Manila"),
		},
		Analytics: AnalyticsConfig{
			SettingsPath: os.Getenv("ANALYTICS_SETTINGS_PATH"),
			RandomSeed:   seed,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Source.Kind {
	case SourceFirebase:
		if c.Firebase.DatabaseURL == "" {
			return errors.New("FIREBASE_DATABASE_URL must be provided when DATA_SOURCE=firebase")
		}
	case SourceMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided when DATA_SOURCE=mongodb")
		}
	default:
		return fmt.Errorf("unsupported DATA_SOURCE %q", c.Source.Kind)
	}

	if c.SheetsEnabled() && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_SNAPSHOT_ID is set")
	}

	if c.DigestEnabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided when WHATSAPP_TOKEN is set")
		case c.WhatsApp.DigestRecipient == "":
			return errors.New("WHATSAPP_DIGEST_RECIPIENT must be provided when WHATSAPP_TOKEN is set")
		}
	}

	if c.Reporting.SnapshotSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.DigestSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	return nil
}

// ArchiveEnabled reports whether dashboard snapshots are stored in MongoDB.
func (c *Config) ArchiveEnabled() bool {
	return c.MongoDB.URI != ""
}

// SheetsEnabled reports whether snapshot rows are exported to Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.SpreadsheetID != ""
}

// DigestEnabled reports whether the weekly digest is delivered over WhatsApp.
func (c *Config) DigestEnabled() bool {
	return c.WhatsApp.AccessToken != ""
}

// CommandsEnabled reports whether staff can request digests by messaging the WhatsApp number.
func (c *Config) CommandsEnabled() bool {
	return c.DigestEnabled() && c.WhatsApp.VerifyToken != ""
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
