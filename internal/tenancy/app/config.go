package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer  string // Issuer claim for session tokens (default: keyhold)
	BaseURL string // Public origin used to build invitation links (default: http://localhost:8080)

	SessionKeyFile string        // Path to the Ed25519 session signing key, generated if absent (default: ./session.key)
	SessionTTL     time.Duration // Session token lifetime (default: 24h)

	DatabaseFile string // Path to the SQLite database file (default: ./keyhold.db)
	PepperFile   string // Path to the password hashing pepper file, generated if absent (default: ./pepper)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Invitation pruning interval (default: 1h)
	InvitationRetention  time.Duration // How long expired invitations linger (default: 30 days)
}

func LoadConfig() Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	return Config{
		Issuer:               getEnvOrDefault("KEYHOLD_ISSUER", "keyhold"),
		BaseURL:              getEnvOrDefault("KEYHOLD_BASE_URL", "http://localhost:8080"),
		SessionKeyFile:       getEnvOrDefault("KEYHOLD_SESSION_KEY_FILE", "session.key"),
		SessionTTL:           getEnvDurationOrDefault("KEYHOLD_SESSION_TTL", 24*time.Hour),
		DatabaseFile:         getEnvOrDefault("KEYHOLD_DATABASE_FILE", "keyhold.db"),
		PepperFile:           getEnvOrDefault("KEYHOLD_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InvitationRetention:  getEnvDurationOrDefault("INVITATION_RETENTION", 30*24*time.Hour),
	}
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
