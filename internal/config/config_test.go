package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func envOf(vars map[string]string) env.Options {
	return env.Options{Environment: vars}
}

func TestLoadMissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Parallel()

	cfg, err := load(filepath.Join(t.TempDir(), "absent.toml"), envOf(map[string]string{
		"TELEGRAM_BOT_TOKEN": "123:ABC",
	}))
	require.NoError(t, err)

	assert.Equal(t, "123:ABC", cfg.Telegram.BotToken)
	assert.Equal(t, DefaultAPIBase, cfg.Telegram.APIBase)
	assert.Equal(t, DefaultSecretHeader, cfg.Telegram.SecretHeader)
	assert.Equal(t, DefaultRequestTimeout, cfg.Telegram.RequestTimeout)
	assert.Equal(t, DefaultHTTPAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultWebhookPath, cfg.Server.WebhookPath)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.Telegram.SecretEnabled())
}

func TestLoadRequiresToken(t *testing.T) {
	t.Parallel()

	_, err := load(filepath.Join(t.TempDir(), "absent.toml"), envOf(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BotToken")
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.toml", `
[log]
level = "debug"
format = "json"

[server]
addr = ":9090"
webhook_path = "/hook"

[telegram]
bot_token = "file-token"
webhook_secret = "s3cr3t"
api_base = "http://localhost:8081/"
request_timeout = "5s"
`)
	cfg, err := load(path, envOf(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/hook", cfg.Server.WebhookPath)
	assert.Equal(t, "file-token", cfg.Telegram.BotToken)
	assert.True(t, cfg.Telegram.SecretEnabled())
	assert.Equal(t, "http://localhost:8081", cfg.Telegram.APIBase, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.Telegram.RequestTimeout)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", `
server:
  addr: ":7070"
telegram:
  bot_token: yaml-token
  webhook_secret: abc
`)
	cfg, err := load(path, envOf(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "yaml-token", cfg.Telegram.BotToken)
	assert.Equal(t, "abc", cfg.Telegram.WebhookSecret)
	assert.Equal(t, DefaultWebhookPath, cfg.Server.WebhookPath)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.toml", `
[telegram]
bot_token = "file-token"
`)
	cfg, err := load(path, envOf(map[string]string{
		"TELEGRAM_BOT_TOKEN":       "env-token",
		"TELEGRAM_WEBHOOK_SECRET":  "env-secret",
		"HTTP_ADDR":                ":1234",
		"TELEGRAM_REQUEST_TIMEOUT": "2s",
		"LOG_LEVEL":                "warn",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "env-secret", cfg.Telegram.WebhookSecret)
	assert.Equal(t, ":1234", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Telegram.RequestTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		vars map[string]string
	}{
		{name: "bad api base", vars: map[string]string{"TELEGRAM_BOT_TOKEN": "t", "TELEGRAM_API_BASE": "ftp://example.com"}},
		{name: "relative webhook path", vars: map[string]string{"TELEGRAM_BOT_TOKEN": "t", "WEBHOOK_PATH": "hook"}},
		{name: "unknown log level", vars: map[string]string{"TELEGRAM_BOT_TOKEN": "t", "LOG_LEVEL": "loud"}},
		{name: "zero body limit", vars: map[string]string{"TELEGRAM_BOT_TOKEN": "t", "WEBHOOK_MAX_BODY_BYTES": "0"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(filepath.Join(t.TempDir(), "absent.toml"), envOf(tc.vars))
			assert.Error(t, err)
		})
	}
}

func TestSecretEnabledIgnoresWhitespace(t *testing.T) {
	t.Parallel()

	assert.False(t, TelegramConfig{WebhookSecret: "   "}.SecretEnabled())
	assert.True(t, TelegramConfig{WebhookSecret: "x"}.SecretEnabled())
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	t.Parallel()

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
