package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath     = "config.toml"
	DefaultDotEnvPath     = ".env"
	DefaultHTTPAddr       = ":8080"
	DefaultWebhookPath    = "/api/telegram/webhook"
	DefaultMaxBodyBytes   = 1 << 20 // 1 MiB
	DefaultAPIBase        = "https://api.telegram.org"
	DefaultSecretHeader   = "X-Telegram-Bot-Api-Secret-Token"
	DefaultRequestTimeout = 15 * time.Second
)

type Config struct {
	Log      LogConfig      `toml:"log" yaml:"log"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Telegram TelegramConfig `toml:"telegram" yaml:"telegram"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `toml:"format" yaml:"format" env:"LOG_FORMAT" validate:"oneof=text json"`
	// File enables a size-rotated log file in addition to stderr.
	File string `toml:"file" yaml:"file" env:"LOG_FILE"`
}

type ServerConfig struct {
	Addr         string `toml:"addr" yaml:"addr" env:"HTTP_ADDR" validate:"required"`
	WebhookPath  string `toml:"webhook_path" yaml:"webhook_path" env:"WEBHOOK_PATH" validate:"required,startswith=/"`
	MaxBodyBytes int64  `toml:"max_body_bytes" yaml:"max_body_bytes" env:"WEBHOOK_MAX_BODY_BYTES" validate:"gt=0"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token" yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN" validate:"required"`
	// WebhookSecret is compared against SecretHeader on every inbound call.
	// Blank disables the check.
	WebhookSecret  string        `toml:"webhook_secret" yaml:"webhook_secret" env:"TELEGRAM_WEBHOOK_SECRET"`
	SecretHeader   string        `toml:"secret_header" yaml:"secret_header" env:"TELEGRAM_SECRET_HEADER" validate:"required"`
	APIBase        string        `toml:"api_base" yaml:"api_base" env:"TELEGRAM_API_BASE" validate:"required,http_url"`
	RequestTimeout time.Duration `toml:"request_timeout" yaml:"request_timeout" env:"TELEGRAM_REQUEST_TIMEOUT" validate:"gt=0"`
}

// SecretEnabled reports whether inbound webhook calls must carry the shared secret.
func (c TelegramConfig) SecretEnabled() bool {
	return strings.TrimSpace(c.WebhookSecret) != ""
}

// Default returns the configuration used before any file or environment is applied.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:         DefaultHTTPAddr,
			WebhookPath:  DefaultWebhookPath,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Telegram: TelegramConfig{
			SecretHeader:   DefaultSecretHeader,
			APIBase:        DefaultAPIBase,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}

// LoadDotEnv loads variables from a .env file without overriding ones already
// present in the process environment. A missing file is ignored.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultDotEnvPath
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the config file at path (TOML, or YAML by extension), overlays
// the process environment and validates the result. A missing file is not an
// error.
func Load(path string) (Config, error) {
	return load(path, env.Options{})
}

func load(path string, opts env.Options) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}
	if err := decodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.Telegram.APIBase = strings.TrimRight(strings.TrimSpace(cfg.Telegram.APIBase), "/")
	cfg.Telegram.BotToken = strings.TrimSpace(cfg.Telegram.BotToken)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints on a fully assembled config.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
