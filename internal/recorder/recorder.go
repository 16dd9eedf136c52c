// Package recorder persists a classified message: it guarantees the category
// exists, deduplicates against already-saved messages and performs the
// insert. It is the only writer of message records.
package recorder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kravchenkod/telegram-keeper-bot/internal/observability"
	db "github.com/kravchenkod/telegram-keeper-bot/internal/storage"
)

// Store is the persistence surface the recorder needs.
type Store interface {
	InsertCategory(ctx context.Context, name string) (bool, error)
	MessageExists(ctx context.Context, telegramLink, summary string) (bool, error)
	SaveMessage(ctx context.Context, msg *db.MessageRecord) (string, error)
}

// Message is a fully processed forwarded message ready to persist.
type Message struct {
	SourceURL    string
	TelegramLink string
	Summary      string
	Category     string
}

type Recorder struct {
	store  Store
	logger *zerolog.Logger
}

func New(store Store, logger *zerolog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record saves the message, creating its category first if needed. A message
// whose telegram link or summary is already stored is not an error: Record
// returns saved=false and no id, and the caller tells the sender the message
// was seen before. Storage failures propagate.
func (r *Recorder) Record(ctx context.Context, msg *Message) (string, bool, error) {
	created, err := r.store.InsertCategory(ctx, msg.Category)
	if err != nil {
		return "", false, fmt.Errorf("ensure category: %w", err)
	}

	if created {
		observability.CategoriesCreated.Inc()
	}

	exists, err := r.store.MessageExists(ctx, msg.TelegramLink, msg.Summary)
	if err != nil {
		return "", false, fmt.Errorf("check duplicate: %w", err)
	}

	if exists {
		r.logger.Info().Str("link", msg.TelegramLink).Msg("message already saved, skipping")

		return "", false, nil
	}

	id, err := r.store.SaveMessage(ctx, &db.MessageRecord{
		SourceURL:    msg.SourceURL,
		TelegramLink: msg.TelegramLink,
		Summary:      msg.Summary,
		Category:     msg.Category,
	})
	if err != nil {
		return "", false, err
	}

	r.logger.Info().
		Str("id", id).
		Str("category", msg.Category).
		Msg("message saved")

	return id, true, nil
}
