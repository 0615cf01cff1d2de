package app

import (
	"os"
	"strconv"
	"time"

	"github.com/Hellmakima/instagram/pkg/jwtx"
)

type Config struct {
	Issuer        string // Issuer claim for tokens
	PublicBaseURL string // Public base URL used in verification links

	AccessKeyFile string // Optional: RSA private key PEM; empty means ephemeral key on startup
	RefreshSecret string // Optional: HS256 secret for refresh tokens; empty means ephemeral
	EmailSecret   string // Optional: HS256 secret for email tokens; empty means ephemeral

	DatabaseFile string // Path to SQLite database file (default: ./auth.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	AccessTTL     time.Duration // Access token lifetime (default: 15m)
	RefreshTTL    time.Duration // Refresh token lifetime (default: 30d)
	EmailTokenTTL time.Duration // Email verification token lifetime (default: 6h)
	UnverifiedTTL time.Duration // How long an unverified account survives (default: 6h)

	SMTPAddr     string // Optional: host:port of the SMTP relay; empty disables mail
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	CookieSecure bool // Secure attribute on session cookies (default: true)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	RetentionPeriod      time.Duration // How long expired ledger rows are kept (default: 24h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "instagram-auth"),
		PublicBaseURL: getEnvOrDefault("AUTH_PUBLIC_BASE_URL", "http://localhost:8080"),

		AccessKeyFile: os.Getenv("AUTH_ACCESS_KEY_FILE"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),
		EmailSecret:   os.Getenv("AUTH_EMAIL_SECRET"),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		AccessTTL:     getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:    getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		EmailTokenTTL: getEnvDurationOrDefault("AUTH_EMAIL_TOKEN_TTL", jwtx.DefaultEmailTokenTTL),
		UnverifiedTTL: getEnvDurationOrDefault("AUTH_UNVERIFIED_TTL", jwtx.DefaultUnverifiedUserTTL),

		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@localhost"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		CookieSecure: getEnvBoolOrDefault("AUTH_COOKIE_SECURE", true),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
		RetentionPeriod:      getEnvDurationOrDefault("AUTH_RETENTION_PERIOD", 24*time.Hour),
	}

	return cfg
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
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
