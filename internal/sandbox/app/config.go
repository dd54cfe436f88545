package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer       string        // Optional: issuer claim for access tokens (default: xminds-sandbox)
	AccessTTL    time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL   time.Duration // Optional: refresh token lifetime (default: 30 days)
	SigningKey   string        // Optional: path to the Ed25519 PEM key, created on first start (default: ephemeral)
	PepperFile   string        // Optional: path to a file holding the password pepper
	DatabaseFile string        // Optional: path to SQLite database file (default: ./sandbox.db)

	ServiceName     string // Required: service account name
	ServicePassword string // Required: service account password
	DatabaseID      string // Optional: database the account logs into (default: sandbox)
	DatabaseName    string // Optional: display name of the database (default: DatabaseID)
	RefreshToken    string // Optional: well-known refresh token registered at start

	// InteractionRatings overrides the rating implied by each interaction
	// type, as "type=rating" pairs separated by commas.
	InteractionRatings map[string]float64

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:       getEnvOrDefault("SANDBOX_ISSUER", "xminds-sandbox"),
		AccessTTL:    getEnvDurationOrDefault("SANDBOX_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:   getEnvDurationOrDefault("SANDBOX_REFRESH_TTL", 30*24*time.Hour),
		SigningKey:   os.Getenv("SANDBOX_SIGNING_KEY_FILE"),
		PepperFile:   os.Getenv("SANDBOX_PEPPER_FILE"),
		DatabaseFile: getEnvOrDefault("SANDBOX_DATABASE_FILE", "sandbox.db"),

		ServiceName:     os.Getenv("SANDBOX_SERVICE_NAME"),
		ServicePassword: os.Getenv("SANDBOX_SERVICE_PASSWORD"),
		DatabaseID:      getEnvOrDefault("SANDBOX_DATABASE_ID", "sandbox"),
		DatabaseName:    os.Getenv("SANDBOX_DATABASE_NAME"),
		RefreshToken:    os.Getenv("SANDBOX_BOOTSTRAP_REFRESH_TOKEN"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if raw := os.Getenv("SANDBOX_INTERACTION_RATINGS"); raw != "" {
		weights, err := parseInteractionRatings(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.InteractionRatings = weights
	}

	if cfg.ServiceName == "" || cfg.ServicePassword == "" {
		return Config{}, fmt.Errorf("SANDBOX_SERVICE_NAME and SANDBOX_SERVICE_PASSWORD are required")
	}

	return cfg, nil
}

// parseInteractionRatings reads "click=6,purchase=10".
func parseInteractionRatings(raw string) (map[string]float64, error) {
	out := map[string]float64{}
	for pair := range strings.SplitSeq(raw, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("SANDBOX_INTERACTION_RATINGS: invalid pair %q", pair)
		}
		rating, err := strconv.ParseFloat(value, 64)
		if err != nil || rating < 1 || rating > 10 {
			return nil, fmt.Errorf("SANDBOX_INTERACTION_RATINGS: rating for %q must be between 1 and 10", name)
		}
		out[name] = rating
	}
	return out, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
