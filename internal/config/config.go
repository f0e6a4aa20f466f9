package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            int
	NatsURL         string
	NatsToken       string
	DatabaseURL     string
	LogLevel        string
	AnthropicAPIKey string
	AnthropicModel  string
	SlackBotToken   string
	SlackChannel    string
	APIToken        string
	StaticDir       string
}

func Load() Config {
	return Config{
		Port:            envInt("TRELLIS_PORT", 8760),
		NatsURL:         envStr("NATS_URL", ""),
		NatsToken:       envStr("NATS_TOKEN", ""),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("TRELLIS_MODEL", "claude-sonnet-4-20250514"),
		SlackBotToken:   envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:    envStr("SLACK_TRAINING_CHANNEL", ""),
		APIToken:        envStr("TRELLIS_API_TOKEN", ""),
		StaticDir:       envStr("TRELLIS_STATIC_DIR", "static"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
