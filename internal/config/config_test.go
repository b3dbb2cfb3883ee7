package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "5432", cfg.DBPort)
	require.False(t, cfg.DebugAuth)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG_AUTH_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9000", cfg.Port)
	require.True(t, cfg.DebugAuth)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}

func TestConfigFileOverridesEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG_AUTH_ENABLED", "true")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "8443"
telegram:
  bot_token: "123:token"
auth:
  debug_enabled: false
cors:
  allowed_origins:
    - https://board.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8443", cfg.Port)
	require.Equal(t, "123:token", cfg.BotToken)
	require.False(t, cfg.DebugAuth)
	require.Equal(t, []string{"https://board.example.com"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBrokenConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
}
