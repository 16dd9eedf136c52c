// Package bot runs the Telegram long-polling loop and drives the
// summarize/classify/record pipeline for every forwarded message.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/kravchenkod/telegram-keeper-bot/internal/recorder"
)

const updateTimeoutSeconds = 60

// Classifier assigns a category and confidence to a message text.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, float64, error)
}

// Summarizer produces a short summary; it degrades internally and never fails.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// Recorder persists a processed message, reporting the duplicate outcome
// via its bool.
type Recorder interface {
	Record(ctx context.Context, msg *recorder.Message) (string, bool, error)
}

type Bot struct {
	api        *tgbotapi.BotAPI
	classifier Classifier
	summarizer Summarizer
	recorder   Recorder
	logger     *zerolog.Logger
}

func New(token string, classifier Classifier, summarizer Summarizer, rec Recorder, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:        api,
		classifier: classifier,
		summarizer: summarizer,
		recorder:   rec,
		logger:     logger,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.api.Self.UserName).Msg("bot is running")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()

			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			// Each message is an independent unit of work; processing in a
			// goroutine keeps the poll loop responsive during LLM backoff.
			go b.handleMessage(ctx, update.Message)
		}
	}
}
