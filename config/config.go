package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

const (
	// MinSessionSecretLength is the minimum required length for session secret in production
	MinSessionSecretLength = 32
	// DefaultQRServiceURL renders a PNG QR code for the URL appended to it
	DefaultQRServiceURL = "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="
)

type Config struct {
	ServerPort     string
	DBPath         string
	Environment    string
	UploadDir      string
	RequestTimeout time.Duration
	// Email (Resend)
	ResendAPIKey    string
	EmailFrom       string
	EmailFromName   string
	EmailTestMode   bool   // When true, emails are logged instead of sent
	LeadNotifyEmail string // Receives a message for every new lead; empty disables it
	// Other
	AllowedOrigins   []string
	AppURL           string
	SessionSecret    string
	QRServiceURL     string
	TursoDatabaseURL string
	TursoAuthToken   string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		zlog.Info().Msg("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	sessionSecret := getEnv("SESSION_SECRET", "")

	ValidateSessionSecret(sessionSecret, environment)

	if sessionSecret == "" && environment != "production" {
		sessionSecret = GenerateSecureSecret()
		zlog.Info().Msg("Generated temporary session secret for development. Set SESSION_SECRET env var for persistence.")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBPath:             getEnv("DB_PATH", "db/app.db"),
		Environment:        environment,
		UploadDir:          getEnv("UPLOAD_DIR", "static/uploads"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@projetometanoia.org"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Projeto Metanoia"),
		EmailTestMode:      getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		LeadNotifyEmail:    getEnv("LEAD_NOTIFY_EMAIL", ""),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:             strings.TrimSuffix(getEnv("APP_URL", "http://localhost:8080"), "/"),
		SessionSecret:      sessionSecret,
		QRServiceURL:       getEnv("QR_SERVICE_URL", DefaultQRServiceURL),
		TursoDatabaseURL:   getEnv("TURSO_DATABASE_URL", ""),
		TursoAuthToken:     getEnv("TURSO_AUTH_TOKEN", ""),
		TurnstileSiteKey:   getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:       getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
	}
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		zlog.Debug().Str("key", key).Str("default", defaultValue).Msg("Using default config value")
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		zlog.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
		return defaultValue
	}
	return d
}

// ValidateSessionSecret validates the session secret meets security requirements
// In production, it must be at least 32 bytes and not a known insecure default
func ValidateSessionSecret(secret string, environment string) error {
	insecureDefaults := []string{
		"dev-secret-change-in-production",
		"change-me",
		"secret",
		"development",
		"test",
		"",
	}

	for _, insecure := range insecureDefaults {
		if strings.EqualFold(secret, insecure) {
			if environment == "production" {
				zlog.Fatal().Msg("SESSION_SECRET is set to an insecure default value. Generate a secure random secret with: openssl rand -base64 32")
			}
			zlog.Warn().Msg("SESSION_SECRET is set to an insecure default value. This is acceptable only in development.")
			return nil
		}
	}

	if environment == "production" && len(secret) < MinSessionSecretLength {
		zlog.Fatal().Int("length", len(secret)).Msgf("SESSION_SECRET must be at least %d characters in production", MinSessionSecretLength)
	}

	return nil
}

// GenerateSecureSecret generates a cryptographically secure random secret
// This is used only for development when no secret is provided
func GenerateSecureSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		zlog.Warn().Err(err).Msg("Failed to generate secure secret")
		return ""
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
