package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLegacyEnv(t *testing.T) {
	for name := range legacyEnv {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearLegacyEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "smtp", cfg.Mail.Provider)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.FeedTTL)
	assert.Equal(t, "Asia/Jakarta", cfg.App.Timezone)
	assert.ErrorContains(t, cfg.Validate(), "mail.from")

	cfg.Mail.From = "pkwt@bank.co.id"
	assert.NoError(t, cfg.Validate())
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := []byte(`
env: production
mail:
  provider: sendgrid
  from: pkwt@bank.co.id
  hr_recipients: "hr@bank.co.id, hr2@bank.co.id"
sendgrid:
  api_key: from-file
scheduler:
  enabled: true
  interval: 30m
`)
	require.NoError(t, os.WriteFile(path, yml, 0o600))
	clearLegacyEnv(t)

	t.Setenv("PKWT_SENDGRID_API_KEY", "from-env")
	t.Setenv("PKWT_AUTH_JWT_SECRET", "jwt")
	t.Setenv("CRON_SECRET", "legacy-cron")
	t.Setenv("DATABASE_URL", "postgres://legacy")
	t.Setenv("PKWT_DATABASE_URL", "postgres://prefixed")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "from-env", cfg.SendGrid.APIKey)
	assert.Equal(t, "legacy-cron", cfg.Cron.Secret)
	assert.Equal(t, "postgres://prefixed", cfg.Database.URL)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, []string{"hr@bank.co.id", "hr2@bank.co.id"}, cfg.HRRecipients())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Mail.From = "pkwt@bank.co.id"
		return cfg
	}

	cfg := base()
	cfg.Mail.Provider = "pigeon"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Env = "production"
	assert.ErrorContains(t, cfg.Validate(), "cron secret")

	cfg = base()
	cfg.Mail.Provider = "sendgrid"
	assert.ErrorContains(t, cfg.Validate(), "sendgrid")

	cfg = base()
	cfg.Scheduler.Mode = "all"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresSender(t *testing.T) {
	clearLegacyEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.ErrorContains(t, cfg.Validate(), "mail.from")

	cfg.SMTP.User = "notifier@bank.co.id"
	assert.NoError(t, cfg.Validate())

	cfg.Mail.Provider = "sendgrid"
	cfg.SendGrid.APIKey = "sg-key"
	assert.ErrorContains(t, cfg.Validate(), "mail.from")

	cfg.Mail.From = "pkwt@bank.co.id"
	assert.NoError(t, cfg.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "smtp.host", envKey("PKWT_SMTP_HOST"))
	assert.Equal(t, "mail.hr_recipients", envKey("PKWT_MAIL_HR_RECIPIENTS"))
	assert.Equal(t, "env", envKey("PKWT_ENV"))
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{App: AppConfig{Timezone: "Not/AZone"}}
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, cfg.Location()).Zone()
	assert.Equal(t, 7*60*60, offset)
}
