package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "https://api.meridian.finance", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.GetTimeout())
	assert.Equal(t, 15*time.Minute, cfg.Dashboard.GetRefreshInterval())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meridian.toml")
	content := `
environment = "production"

[server]
port = 9000

[api]
base_url = "https://staging.meridian.finance"
timeout = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://staging.meridian.finance", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.GetTimeout())

	// Untouched sections keep defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "data/session.json", cfg.Session.Path)
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/meridian.toml")
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MERIDIAN_ENV", "prod")
	t.Setenv("MERIDIAN_PORT", "7070")
	t.Setenv("MERIDIAN_API_URL", "http://localhost:4000")
	t.Setenv("MERIDIAN_SESSION_PATH", "/tmp/sess.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://localhost:4000", cfg.API.BaseURL)
	assert.Equal(t, "/tmp/sess.json", cfg.Session.Path)
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	c := APIConfig{Timeout: "not-a-duration"}
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}
