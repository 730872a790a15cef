package app

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quizforge/quizforge/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: quizforge)

	AccessTokenSecret  string // Required: HMAC key for access tokens
	RefreshTokenSecret string // Required: HMAC key for refresh tokens, distinct from the access key
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	OTPTTL             time.Duration // How long verification codes stay redeemable (default: 5m)
	ResetTokenTTL      time.Duration // How long reset links stay redeemable (default: 10m)

	DatabaseFile string // Path to SQLite database file (default: ./quizforge.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	FrontendURL    string // Base URL the reset-password links point at
	CookieSecure   bool   // Secure attribute on auth cookies (default: true outside dev)
	CookieSameSite http.SameSite

	Env                  string // Environment (dev, staging, prod) (default: dev)
	LogLevel             string // Log level (debug, info, warn, error) (default: info)
	LogFormat            string // Log format (json, text) (default: json)
	Port                 int    // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration
	HousekeepingInterval time.Duration
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")

	cfg := Config{
		Issuer: getEnvOrDefault("QUIZFORGE_ISSUER", "quizforge"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		OTPTTL:             getEnvDurationOrDefault("OTP_TTL", 5*time.Minute),
		ResetTokenTTL:      getEnvDurationOrDefault("RESET_TOKEN_TTL", 10*time.Minute),

		DatabaseFile: getEnvOrDefault("QUIZFORGE_DATABASE_FILE", "quizforge.db"),
		PepperFile:   getEnvOrDefault("QUIZFORGE_PEPPER_FILE", "pepper"),

		FrontendURL:    getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		CookieSecure:   env != "dev",
		CookieSameSite: parseSameSite(os.Getenv("COOKIE_SAMESITE")),

		Env:                  env,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "true" || v == "1"
	}

	return cfg
}

// Validate rejects configurations that cannot produce a working service.
func (c Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	return nil
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
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

	// Integer minutes for backwards compatibility.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
