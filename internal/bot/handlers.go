package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kravchenkod/telegram-keeper-bot/internal/observability"
	"github.com/kravchenkod/telegram-keeper-bot/internal/recorder"
)

const (
	replyDuplicate = "⚠️ This message was already processed"
	replyError     = "❌ Failed to process the message"

	sourceNotFound = "not found"

	statusSaved     = "saved"
	statusDuplicate = "duplicate"
	statusError     = "error"
	statusSkipped   = "skipped"
)

// handleMessage processes one inbound message end to end. Messages that are
// not forwarded, or carry no text, are dropped silently without a reply.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.ForwardFrom == nil && msg.ForwardFromChat == nil {
		return
	}

	if msg.Text == "" {
		b.logger.Warn().Msg("forwarded message has no text, skipping")
		observability.MessagesProcessed.WithLabelValues(statusSkipped).Inc()

		return
	}

	logger := b.logger.With().
		Int64("chat_id", msg.Chat.ID).
		Int("message_id", msg.MessageID).
		Logger()
	logger.Info().Msg("processing forwarded message")

	sourceURL := extractURL(msg)
	telegramLink := messageLink(msg)

	summary := b.summarizer.Summarize(ctx, msg.Text)

	category, confidence, err := b.classifier.Classify(ctx, msg.Text)
	if err != nil {
		logger.Error().Err(err).Msg("classification failed")
		observability.MessagesProcessed.WithLabelValues(statusError).Inc()
		b.reply(msg, replyError)

		return
	}

	logger.Info().
		Str("category", category).
		Float64("confidence", confidence).
		Str("summary", summary).
		Msg("message processed")

	id, saved, err := b.recorder.Record(ctx, &recorder.Message{
		SourceURL:    sourceURL,
		TelegramLink: telegramLink,
		Summary:      summary,
		Category:     category,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to record message")
		observability.MessagesProcessed.WithLabelValues(statusError).Inc()
		b.reply(msg, replyError)

		return
	}

	if !saved {
		observability.MessagesProcessed.WithLabelValues(statusDuplicate).Inc()
		b.reply(msg, replyDuplicate)

		return
	}

	logger.Info().Str("id", id).Msg("message saved")
	observability.MessagesProcessed.WithLabelValues(statusSaved).Inc()
	b.reply(msg, successReply(summary, category, sourceURL))
}

func successReply(summary, category, sourceURL string) string {
	source := sourceURL
	if source == "" {
		source = sourceNotFound
	}

	// cases.Caser carries mutable transformer state and is not safe for
	// concurrent use; handlers run in parallel, so build one per reply.
	title := cases.Title(language.English)

	return fmt.Sprintf("✅ Message processed\n📝 Summary: %s\n🏷 Category: %s\n🔗 Source: %s",
		summary, title.String(category), source)
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyToMessageID = msg.MessageID

	if _, err := b.api.Send(reply); err != nil {
		b.logger.Error().Err(err).Msg("failed to send reply")
	}
}
