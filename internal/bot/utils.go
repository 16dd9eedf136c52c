package bot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var urlRe = regexp.MustCompile(`https?://\S+`)

// extractURL returns the first URL found in the message, preferring Telegram
// entity annotations over a regex scan of the raw text.
func extractURL(msg *tgbotapi.Message) string {
	for _, entity := range msg.Entities {
		if entity.Type == "url" {
			if url := entitySlice(msg.Text, entity.Offset, entity.Length); url != "" {
				return url
			}
		}
	}

	return urlRe.FindString(msg.Text)
}

// entitySlice cuts an entity out of the text. Telegram counts entity offsets
// in UTF-16 code units, not bytes or runes.
func entitySlice(text string, offset, length int) string {
	units := utf16.Encode([]rune(text))
	if offset < 0 || length < 0 || offset+length > len(units) {
		return ""
	}

	return string(utf16.Decode(units[offset : offset+length]))
}

// messageLink builds the t.me link for a message. Channel and supergroup
// chat ids carry a -100 prefix that the web link format drops.
func messageLink(msg *tgbotapi.Message) string {
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	chatID = strings.TrimPrefix(chatID, "-100")

	return fmt.Sprintf("https://t.me/c/%s/%d", chatID, msg.MessageID)
}
