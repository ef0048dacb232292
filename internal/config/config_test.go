package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("TRIAGE_INFERENCE_DELAY_MS", "")
	t.Setenv("TRIAGE_RESPONSE_DELAY_MS", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.Triage.InferenceDelay())
	assert.Equal(t, 2*time.Second, cfg.Triage.ResponseDelay())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("TRIAGE_INFERENCE_DELAY_MS", "10")
	t.Setenv("TRIAGE_RESPONSE_DELAY_MS", "not-a-number")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Millisecond, cfg.Triage.InferenceDelay())
	assert.Equal(t, 2*time.Second, cfg.Triage.ResponseDelay())
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	assert.Error(t, err)
}

func TestNegativeDelayClampsToZero(t *testing.T) {
	cfg := TriageConfig{InferenceDelayMS: -5}
	assert.Equal(t, time.Duration(0), cfg.InferenceDelay())
}

func TestNotificationConfig(t *testing.T) {
	t.Setenv("NOTIFY_WEBHOOK_URL", "")
	t.Setenv("NOTIFY_WEBHOOK_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Notification.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Notification.WebhookTimeout())

	t.Setenv("NOTIFY_WEBHOOK_URL", "http://hooks.local/triage")
	t.Setenv("NOTIFY_WEBHOOK_TIMEOUT_SECONDS", "2")

	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Notification.Enabled())
	assert.Equal(t, 2*time.Second, cfg.Notification.WebhookTimeout())
}
