package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SESSION_SECRET", "a-very-long-session-secret-for-tests-only")
	t.Setenv("APP_URL", "https://metanoia.test/")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://metanoia.test", cfg.AppURL)
	assert.Equal(t, DefaultQRServiceURL, cfg.QRServiceURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.EmailTestMode)
	assert.False(t, cfg.IsProduction())
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG_ON", "yes")
	t.Setenv("FLAG_OFF", "0")
	t.Setenv("FLAG_BAD", "maybe")

	assert.True(t, getEnvBool("FLAG_ON", false))
	assert.False(t, getEnvBool("FLAG_OFF", true))
	assert.True(t, getEnvBool("FLAG_BAD", true))
	assert.False(t, getEnvBool("FLAG_MISSING", false))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TIMEOUT_OK", "3s")
	t.Setenv("TIMEOUT_BAD", "soon")
	t.Setenv("TIMEOUT_NEG", "-1s")

	assert.Equal(t, 3*time.Second, getEnvDuration("TIMEOUT_OK", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("TIMEOUT_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("TIMEOUT_NEG", time.Second))
}

func TestGenerateSecureSecret(t *testing.T) {
	a := GenerateSecureSecret()
	b := GenerateSecureSecret()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
