package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "portal.db")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LINK_TOKEN_PEPPER", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("DEV_EXPOSE_MAGIC_LINKS", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("MAGIC_LINK_TTL", "")
	t.Setenv("RESEND_COOLDOWN", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.MagicLinkTTL)
	assert.Equal(t, time.Minute, cfg.ResendCooldown)
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.DevExposeLinks)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadParsesDurations(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAGIC_LINK_TTL", "30m")
	t.Setenv("SESSION_TTL", "12h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.MagicLinkTTL)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)

	t.Setenv("MAGIC_LINK_TTL", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestProdHardening(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "prod")

	// Default secrets are refused in prod.
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "real-secret-value")
	t.Setenv("LINK_TOKEN_PEPPER", "real-pepper-value")
	t.Setenv("SMTP_HOST", "smtp.ur.ac.rw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())

	// The console link side channel never ships to prod.
	t.Setenv("DEV_EXPOSE_MAGIC_LINKS", "true")
	_, err = Load()
	assert.Error(t, err)
}
