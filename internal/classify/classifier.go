// Package classify decides which category a message text belongs to. It
// tries a deterministic substring match against the known categories first
// and only then asks the model, resolving near-duplicate category names with
// a second model call.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kravchenkod/telegram-keeper-bot/internal/llm"
)

// Store is the category list the classifier reads. The classifier never
// writes categories; that is the recorder's job.
type Store interface {
	ListCategories(ctx context.Context) ([]string, error)
}

type Classifier struct {
	store   Store
	gateway *llm.Gateway
	logger  *zerolog.Logger
}

func New(store Store, gateway *llm.Gateway, logger *zerolog.Logger) *Classifier {
	return &Classifier{store: store, gateway: gateway, logger: logger}
}

// Classify returns a category and a confidence in [0,1] for the given text.
// A substring match against an existing category short-circuits with
// confidence 1.0 and no model calls. Otherwise the model classifies the text;
// results below 0.5 confidence are downgraded to the review category, and a
// candidate absent from the existing list goes through a duplicate check so
// the set of categories stays non-redundant. Only the category list read can
// fail; gateway exhaustion degrades to fallback values instead.
func (c *Classifier) Classify(ctx context.Context, text string) (string, float64, error) {
	categories, err := c.store.ListCategories(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list categories: %w", err)
	}

	if category, ok := simpleMatch(text, categories); ok {
		c.logger.Debug().Str("category", category).Msg("category matched by substring")

		return category, 1.0, nil
	}

	parsed := c.classifyWithLLM(ctx, text, categories)

	category := parsed.Category
	if parsed.Confidence < 0.5 {
		c.logger.Info().
			Str("category", category).
			Float64("confidence", parsed.Confidence).
			Msg("low classification confidence, marking for review")

		category = CategoryReview
	}

	category = c.resolveDuplicate(ctx, category, categories)

	return category, parsed.Confidence, nil
}

// simpleMatch returns the first stored category whose lowercase name occurs
// anywhere in the lowercased text. The store lists categories alphabetically,
// so ties resolve by alphabetical precedence.
func simpleMatch(text string, categories []string) (string, bool) {
	textLower := strings.ToLower(text)

	for _, category := range categories {
		if strings.Contains(textLower, strings.ToLower(category)) {
			return category, true
		}
	}

	return "", false
}

func (c *Classifier) classifyWithLLM(ctx context.Context, text string, categories []string) Parsed {
	prompt := llm.ClassificationPrompt(text, categories)

	parsed, err := llm.CompleteWithRetry(ctx, c.gateway, "classify", prompt, llm.ClassifyMaxTokens,
		func(raw string) (Parsed, error) {
			result, ok := parseResponse(raw)
			if !ok {
				c.logger.Warn().Str("raw", raw).Msg("no classification labels in response, using defaults")
			}

			return result, nil
		})
	if err != nil {
		return Parsed{Category: CategoryGeneral, Confidence: defaultConfidence}
	}

	return parsed
}

// resolveDuplicate asks the model whether the candidate duplicates an
// existing category in meaning. An answer matching a stored category
// case-insensitively substitutes the stored casing; anything else, including
// gateway exhaustion, keeps the candidate unchanged.
func (c *Classifier) resolveDuplicate(ctx context.Context, candidate string, categories []string) string {
	if len(categories) == 0 {
		return candidate
	}

	if stored, ok := findCategory(categories, candidate); ok {
		return stored
	}

	prompt := llm.DuplicateCheckPrompt(candidate, categories)

	answer, err := llm.CompleteWithRetry(ctx, c.gateway, "duplicate-check", prompt, llm.DuplicateCheckMaxTokens,
		func(raw string) (string, error) {
			answer, _, _ := strings.Cut(raw, "\n")

			return strings.Trim(strings.TrimSpace(answer), `"'`), nil
		})
	if err != nil {
		return candidate
	}

	if stored, ok := findCategory(categories, answer); ok {
		c.logger.Info().
			Str("candidate", candidate).
			Str("category", stored).
			Msg("candidate category resolved to an existing one")

		return stored
	}

	return candidate
}

func findCategory(categories []string, name string) (string, bool) {
	for _, stored := range categories {
		if strings.EqualFold(stored, name) {
			return stored, true
		}
	}

	return "", false
}
