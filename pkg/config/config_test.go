package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 2*time.Second, cfg.SuccessDelay)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	body := `
http_port: 9000
database:
  driver: sqlite
  url: file:shop.db
telegram:
  bot_token: from-file
  chat_id: "42"
checkout_success_delay: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.uz, http://localhost:*")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:shop.db", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.Equal(t, 500*time.Millisecond, cfg.SuccessDelay)
	assert.Equal(t, []string{"https://shop.uz", "http://localhost:*"}, cfg.CORSAllowedOrigins)
}

func TestLoadBrokenFileStillReturnsConfig(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	assert.Error(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	assert.Equal(t, 7, getEnvInt("HTTP_PORT", 7))
}
