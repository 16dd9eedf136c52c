package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestExtractURL(t *testing.T) {
	tests := []struct {
		name string
		msg  *tgbotapi.Message
		want string
	}{
		{
			name: "from_entity",
			msg: &tgbotapi.Message{
				Text: "read this: https://example.com/a and more",
				Entities: []tgbotapi.MessageEntity{
					{Type: "url", Offset: 11, Length: 21},
				},
			},
			want: "https://example.com/a",
		},
		{
			name: "entity_offset_in_utf16_units",
			msg: &tgbotapi.Message{
				// Emoji occupies two UTF-16 code units.
				Text: "🔥 https://example.com/b",
				Entities: []tgbotapi.MessageEntity{
					{Type: "url", Offset: 3, Length: 21},
				},
			},
			want: "https://example.com/b",
		},
		{
			name: "regex_fallback_without_entities",
			msg:  &tgbotapi.Message{Text: "see http://example.org/page for details"},
			want: "http://example.org/page",
		},
		{
			name: "no_url",
			msg:  &tgbotapi.Message{Text: "plain text only"},
			want: "",
		},
		{
			name: "entity_out_of_bounds_falls_back",
			msg: &tgbotapi.Message{
				Text: "short https://example.com/c",
				Entities: []tgbotapi.MessageEntity{
					{Type: "url", Offset: 100, Length: 20},
				},
			},
			want: "https://example.com/c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractURL(tt.msg); got != tt.want {
				t.Errorf("extractURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageLink(t *testing.T) {
	tests := []struct {
		name      string
		chatID    int64
		messageID int
		want      string
	}{
		{
			name:      "supergroup_drops_prefix",
			chatID:    -1001234567890,
			messageID: 42,
			want:      "https://t.me/c/1234567890/42",
		},
		{
			name:      "plain_chat_id_kept",
			chatID:    123456,
			messageID: 7,
			want:      "https://t.me/c/123456/7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &tgbotapi.Message{
				MessageID: tt.messageID,
				Chat:      &tgbotapi.Chat{ID: tt.chatID},
			}

			if got := messageLink(msg); got != tt.want {
				t.Errorf("messageLink() = %q, want %q", got, tt.want)
			}
		})
	}
}
