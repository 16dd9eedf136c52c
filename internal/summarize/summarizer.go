// Package summarize produces a short summary of a message text via the
// model, degrading to plain truncation when the gateway gives up.
package summarize

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/kravchenkod/telegram-keeper-bot/internal/llm"
)

// Texts shorter than this are returned as-is; there is nothing to compress.
const minSummarizeLength = 50

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	forwardedMarkerRe = regexp.MustCompile(`(?m)^Forwarded from .*\n?`)
	ellipsisRe        = regexp.MustCompile(`\.{3,}`)
	exclamationRe     = regexp.MustCompile(`!{2,}`)
	questionRe        = regexp.MustCompile(`\?{2,}`)

	// Lead-ins the model tends to prepend despite the prompt.
	summaryPrefixes = []string{
		"Summary:", "Short summary:", "Main idea:", "In short:", "TL;DR:",
	}
)

type Summarizer struct {
	gateway   *llm.Gateway
	maxLength int
	logger    *zerolog.Logger
}

func New(gateway *llm.Gateway, maxLength int, logger *zerolog.Logger) *Summarizer {
	return &Summarizer{gateway: gateway, maxLength: maxLength, logger: logger}
}

// Summarize returns a summary of at most the configured length. It never
// fails: gateway exhaustion falls back to truncating the cleaned text at a
// sentence or word boundary.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minSummarizeLength {
		return trimmed
	}

	cleaned := cleanText(trimmed)
	prompt := llm.SummaryPrompt(cleaned, s.maxLength)

	summary, err := llm.CompleteWithRetry(ctx, s.gateway, "summarize", prompt, llm.SummaryMaxTokens,
		func(raw string) (string, error) {
			return capLength(cleanSummary(strings.TrimSpace(raw)), s.maxLength), nil
		})
	if err != nil {
		s.logger.Warn().Msg("summarization degraded to truncation")

		return fallbackSummary(cleaned, s.maxLength)
	}

	return summary
}

// cleanText normalizes the input before prompting: collapses whitespace,
// strips forwarding headers and squashes repeated punctuation.
func cleanText(text string) string {
	text = forwardedMarkerRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = ellipsisRe.ReplaceAllString(text, "...")
	text = exclamationRe.ReplaceAllString(text, "!")
	text = questionRe.ReplaceAllString(text, "?")

	return text
}

// cleanSummary strips a lead-in label and surrounding quotes from the
// model's answer.
func cleanSummary(summary string) string {
	for _, prefix := range summaryPrefixes {
		if strings.HasPrefix(summary, prefix) {
			summary = strings.TrimSpace(summary[len(prefix):])

			break
		}
	}

	if strings.HasPrefix(summary, `"`) && strings.HasSuffix(summary, `"`) && len(summary) > 1 {
		summary = strings.TrimSpace(summary[1 : len(summary)-1])
	}

	return summary
}

// capLength cuts an over-long summary at the last word boundary within the
// limit and marks the cut with an ellipsis.
func capLength(summary string, maxLength int) string {
	runes := []rune(summary)
	if len(runes) <= maxLength {
		return summary
	}

	capped := string(runes[:maxLength])
	if i := strings.LastIndex(capped, " "); i > 0 {
		capped = capped[:i]
	}

	return capped + "..."
}

// fallbackSummary truncates the text itself, preferring a sentence boundary
// in the second half of the window, then a word boundary.
func fallbackSummary(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	truncated := string(runes[:maxLength])

	if i := strings.LastIndex(truncated, "."); i > len(truncated)/2 {
		return truncated[:i+1]
	}

	if i := strings.LastIndex(truncated, " "); i > len(truncated)/2 {
		return truncated[:i] + "..."
	}

	return truncated + "..."
}
