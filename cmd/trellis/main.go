package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/calluna-vineyards/trellis/internal/anthropic"
	"github.com/calluna-vineyards/trellis/internal/api"
	"github.com/calluna-vineyards/trellis/internal/config"
	"github.com/calluna-vineyards/trellis/internal/content"
	"github.com/calluna-vineyards/trellis/internal/events"
	"github.com/calluna-vineyards/trellis/internal/rubric"
	"github.com/calluna-vineyards/trellis/internal/slack"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("trellis starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A rubric with bad weights is a data bug; refuse to start.
	if err := rubric.ValidateWeights(); err != nil {
		slog.Error("rubric validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.AnthropicAPIKey == "" {
		slog.Error("ANTHROPIC_API_KEY is required")
		os.Exit(1)
	}
	llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	slog.Info("anthropic client ready", "model", cfg.AnthropicModel)

	// Content database (optional; static fallback pages otherwise)
	var contentStore *content.Store
	if cfg.DatabaseURL != "" {
		var err error
		contentStore, err = content.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer contentStore.Close()
		slog.Info("content database connected")
	} else {
		slog.Warn("DATABASE_URL not set, serving static content only")
	}

	// NATS (optional; session events are a nicety, not a dependency)
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.Connect(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, session events disabled")
	}

	// Slack poster (optional; evaluations still work, managers just don't
	// get the channel summary)
	var slackPoster *slack.Poster
	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		slackPoster = slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, slog.Default())
		slog.Info("slack poster ready", "channel", cfg.SlackChannel)
	} else {
		slog.Warn("slack not configured, evaluation summaries stay in-app")
	}

	srv := api.NewServer(api.Config{
		Port:      cfg.Port,
		APIToken:  cfg.APIToken,
		StaticDir: cfg.StaticDir,
		LLM:       llm,
		Events:    publisher,
		Content:   contentStore,
		Slack:     slackPoster,
		Logger:    slog.Default(),
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("trellis ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("trellis stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
