package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 15000, cfg.API.TimeoutMs)
	assert.Equal(t, "quoteme.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
api:
  base_url: https://quotes.example.com/api
  timeout_ms: 2000
identity:
  token_url: https://quotes.example.com/oauth/token
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quoteme.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://quotes.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 2000, cfg.API.TimeoutMs)
	assert.Equal(t, "https://quotes.example.com/oauth/token", cfg.Identity.TokenURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Keys the file omits fall back to defaults.
	assert.Equal(t, "quoteme-client", cfg.Identity.ClientID)
}

func TestEnvOverridesFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("QUOTEME_API_BASE_URL", "https://env.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL)
}

func TestLogger(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "debug"}}
	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	cfg.Logging.Level = "noisy"
	_, err = cfg.Logger()
	assert.Error(t, err)
}
