package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REMINDER_LEAD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.ReminderLead)
	assert.Equal(t, 30*time.Second, cfg.ReminderSweepInterval)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "https://exp.host/--/api/v2/push/send", cfg.PushRelayURL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REMINDER_LEAD", "90m")
	t.Setenv("ADMIN_EMAILS", "Owner@Shop.com, second@shop.com")
	t.Setenv("S3_BUCKET", "barber-images")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 90*time.Minute, cfg.ReminderLead)
	assert.True(t, cfg.IsAdminEmail("owner@shop.com"))
	assert.True(t, cfg.IsAdminEmail("second@shop.com"))
	assert.False(t, cfg.IsAdminEmail("someone@shop.com"))
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "https://cdn.example.com", cfg.S3.PublicBaseURL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("PUSH_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config push.timeout")
	assert.Contains(t, err.Error(), "soon")
}

func TestLoadRejectsNonPositiveSweep(t *testing.T) {
	t.Setenv("REMINDER_SWEEP_INTERVAL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.EqualError(t, err, "config reminder.sweep_interval must be positive")
}
