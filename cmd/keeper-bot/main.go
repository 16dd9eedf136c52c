package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kravchenkod/telegram-keeper-bot/internal/bot"
	"github.com/kravchenkod/telegram-keeper-bot/internal/classify"
	"github.com/kravchenkod/telegram-keeper-bot/internal/config"
	"github.com/kravchenkod/telegram-keeper-bot/internal/llm"
	"github.com/kravchenkod/telegram-keeper-bot/internal/observability"
	"github.com/kravchenkod/telegram-keeper-bot/internal/recorder"
	db "github.com/kravchenkod/telegram-keeper-bot/internal/storage"
	"github.com/kravchenkod/telegram-keeper-bot/internal/summarize"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.PostgresDSN, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	client := llm.New(llm.Config{
		APIKey:       cfg.LLMAPIKey,
		Model:        cfg.LLMModel,
		Timeout:      cfg.LLMTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
	}, &logger)
	gateway := llm.NewGateway(client, cfg.LLMMaxRetries, &logger)

	classifier := classify.New(database, gateway, &logger)
	summarizer := summarize.New(gateway, cfg.SummaryMaxLength, &logger)
	rec := recorder.New(database, &logger)

	keeperBot, err := bot.New(cfg.BotToken, classifier, summarizer, rec, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bot")
	}

	health := observability.NewServer(database, cfg.HealthPort, &logger)

	go func() {
		if err := health.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("health check server error")
		}
	}()

	if err := keeperBot.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("bot stopped")

			return
		}

		logger.Fatal().Err(err).Msg("bot error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
