package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// MessageRecord is a persisted forwarded message.
type MessageRecord struct {
	ID           string
	SourceURL    string
	TelegramLink string
	Summary      string
	Category     string
}

// MessageExists reports whether a record with the same telegram link or the
// same summary text already exists. Identical summaries are treated as the
// same underlying content.
func (db *DB) MessageExists(ctx context.Context, telegramLink, summary string) (bool, error) {
	var exists bool

	err := db.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM messages WHERE telegram_link = $1 OR summary = $2)",
		telegramLink, summary,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check message exists: %w", err)
	}

	return exists, nil
}

// SaveMessage inserts a message record and returns its generated id.
func (db *DB) SaveMessage(ctx context.Context, msg *MessageRecord) (string, error) {
	var id pgtype.UUID

	err := db.Pool.QueryRow(ctx,
		`INSERT INTO messages (source_url, telegram_link, summary, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		toText(msg.SourceURL), msg.TelegramLink, msg.Summary, msg.Category,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("save message: %w", err)
	}

	return fromUUID(id), nil
}

// Helpers

func toText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func fromUUID(uid pgtype.UUID) string {
	if !uid.Valid {
		return ""
	}

	return uuid.UUID(uid.Bytes).String()
}
