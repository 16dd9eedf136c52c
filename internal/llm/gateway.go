package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrExhausted is returned when every retry attempt has failed. Callers
// substitute their own fallback value; the gateway does not know its
// semantics.
var ErrExhausted = errors.New("llm: all retries exhausted")

// Gateway wraps a Client with bounded exponential-backoff retry. Rate-limit
// failures wait 2^attempt+1 seconds, any other failure (including a malformed
// response rejected by the caller's parser) waits 2^attempt seconds. It never
// sleeps after the final attempt.
type Gateway struct {
	client     Client
	maxRetries int
	logger     *zerolog.Logger

	// sleep is replaceable in tests.
	sleep func(time.Duration)
}

func NewGateway(client Client, maxRetries int, logger *zerolog.Logger) *Gateway {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	return &Gateway{
		client:     client,
		maxRetries: maxRetries,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// CompleteWithRetry performs a completion call and parses the response,
// retrying on request failures and on parse rejections. On exhaustion it
// returns ErrExhausted; failures along the way are logged, not surfaced.
func CompleteWithRetry[T any](ctx context.Context, g *Gateway, operation, prompt string, maxTokens int, parse func(string) (T, error)) (T, error) {
	var zero T

	for attempt := 0; attempt < g.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		raw, err := g.client.Complete(ctx, prompt, maxTokens)
		if err != nil {
			g.backoff(attempt, operation, err)
			continue
		}

		result, err := parse(raw)
		if err != nil {
			g.logger.Error().Err(err).Str("operation", operation).Msg("malformed LLM response")
			g.backoff(attempt, operation, err)

			continue
		}

		return result, nil
	}

	g.logger.Error().Str("operation", operation).Int("max_retries", g.maxRetries).Msg("all retries failed")

	return zero, ErrExhausted
}

func (g *Gateway) backoff(attempt int, operation string, err error) {
	var wait time.Duration

	if isRateLimited(err) {
		wait = time.Duration(1<<attempt+1) * time.Second
		g.logger.Warn().
			Str("operation", operation).
			Dur("wait", wait).
			Int("attempt", attempt+1).
			Int("max_retries", g.maxRetries).
			Msg("rate limit hit")
	} else {
		wait = time.Duration(1<<attempt) * time.Second
		g.logger.Error().Err(err).Str("operation", operation).Msg("LLM request failed")
	}

	if attempt < g.maxRetries-1 {
		g.sleep(wait)
	}
}
