package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 300*time.Millisecond, cfg.Reports.SearchDebounce)
	assert.Equal(t, 30*24*time.Hour, cfg.Reports.OldAfter)
	assert.Equal(t, 4, cfg.Reports.DeleteConcurrency)
	assert.False(t, cfg.Session.Enabled)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKEND_BASE_URL", "https://backend.example.com/")
	t.Setenv("REPORTS_SEARCH_DEBOUNCE", "50ms")
	t.Setenv("REPORTS_DELETE_CONCURRENCY", "-1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 50*time.Millisecond, cfg.Reports.SearchDebounce)
	assert.Equal(t, 4, cfg.Reports.DeleteConcurrency)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
