package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/internal/logging"
)

// Logging settings shared by every binary
type Logging struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// LoggerOptions converts the settings for logging.New
func (l Logging) LoggerOptions() logging.Options {
	return logging.Options{Level: l.LogLevel, Format: l.LogFormat}
}

// BotConfig configures the Telegram bot host
type BotConfig struct {
	Logging

	// Telegram
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Callback payload limits in bytes, per platform
	TelegramCallbackLimit int `env:"TELEGRAM_CALLBACK_LIMIT" envDefault:"64"`
	DiscordCustomIDLimit  int `env:"DISCORD_CUSTOM_ID_LIMIT" envDefault:"100"`
}

// TelegramCodec returns the callback codec for the configured limit
func (c *BotConfig) TelegramCodec() callback.Codec {
	codec := callback.Telegram()
	codec.Limit = c.TelegramCallbackLimit
	return codec
}

// DiscordCodec returns the custom_id codec for the configured limit
func (c *BotConfig) DiscordCodec() callback.Codec {
	codec := callback.Discord()
	codec.Limit = c.DiscordCustomIDLimit
	return codec
}

// RegistrarConfig configures the webhook registration tool
type RegistrarConfig struct {
	Logging

	APIURL      string        `env:"WEBHOOK_API_URL" envDefault:"https://webexapis.com/v1"`
	APIToken    string        `env:"WEBHOOK_API_TOKEN,required"`
	Platform    string        `env:"WEBHOOK_PLATFORM" envDefault:"webex"`
	Secret      string        `env:"WEBHOOK_SECRET"`
	TargetURL   string        `env:"WEBHOOK_TARGET_URL"` // default for manifest entries without one
	Manifest    string        `env:"WEBHOOK_MANIFEST" envDefault:"./webhooks.yaml"`
	PageSize    int           `env:"WEBHOOK_PAGE_SIZE" envDefault:"100"`
	HTTPTimeout time.Duration `env:"WEBHOOK_HTTP_TIMEOUT" envDefault:"30s"`

	// Audit trail, empty disables it
	AuditDatabasePath string `env:"AUDIT_DATABASE_PATH" envDefault:"./data/webhooks.db"`
}

// LoadBot loads the bot configuration from the environment
func LoadBot() (*BotConfig, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &BotConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TelegramCallbackLimit <= 0 || cfg.TelegramCallbackLimit > callback.TelegramLimit {
		return nil, fmt.Errorf("TELEGRAM_CALLBACK_LIMIT must be between 1 and %d, got %d", callback.TelegramLimit, cfg.TelegramCallbackLimit)
	}
	if cfg.DiscordCustomIDLimit <= 0 || cfg.DiscordCustomIDLimit > callback.DiscordLimit {
		return nil, fmt.Errorf("DISCORD_CUSTOM_ID_LIMIT must be between 1 and %d, got %d", callback.DiscordLimit, cfg.DiscordCustomIDLimit)
	}

	return cfg, nil
}

// LoadRegistrar loads the registration tool configuration from the environment
func LoadRegistrar() (*RegistrarConfig, error) {
	_ = godotenv.Load()

	cfg := &RegistrarConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("WEBHOOK_API_URL must be an absolute http(s) URL, got %q", cfg.APIURL)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("WEBHOOK_PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	return cfg, nil
}
