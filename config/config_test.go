package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty values count as unset.
	for _, k := range keys {
		t.Setenv(k, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "thaiglass", cfg.MongoDB)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "08:00", cfg.StockAlertAt)
	assert.False(t, cfg.AuthRequired)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.MailEnabled())
	assert.Empty(t, cfg.Origins())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("METRICS_ALLOWED_IPS", "10.0.0.1")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("ALERT_EMAIL", "owner@example.com")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, "/v1", cfg.APIPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
	assert.Equal(t, []string{"10.0.0.1"}, cfg.MetricsIPs())
	assert.True(t, cfg.MailEnabled())
	assert.True(t, cfg.IsProduction())
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_DB=fromfile\nTIMEZONE=UTC\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("MONGO_DB")
		os.Unsetenv("TIMEZONE")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.MongoDB)
	assert.Equal(t, "UTC", cfg.Timezone)
}
