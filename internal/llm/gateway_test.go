package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

type scriptedClient struct {
	errs      []error
	responses []string
	calls     int
}

func (c *scriptedClient) Complete(context.Context, string, int) (string, error) {
	i := c.calls
	c.calls++

	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}

	if i < len(c.responses) {
		return c.responses[i], nil
	}

	return "", errors.New("scriptedClient: out of responses")
}

func newTestGateway(client Client, maxRetries int) (*Gateway, *[]time.Duration) {
	logger := zerolog.Nop()
	g := NewGateway(client, maxRetries, &logger)

	var sleeps []time.Duration

	g.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
	}

	return g, &sleeps
}

func identity(raw string) (string, error) {
	return raw, nil
}

func TestCompleteWithRetryFirstAttemptSucceeds(t *testing.T) {
	client := &scriptedClient{responses: []string{"answer"}}
	g, sleeps := newTestGateway(client, 3)

	got, err := CompleteWithRetry(context.Background(), g, "test", "prompt", 10, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "answer" {
		t.Fatalf("got %q, want %q", got, "answer")
	}

	if client.calls != 1 || len(*sleeps) != 0 {
		t.Fatalf("expected one call and no sleeps, got %d calls, %d sleeps", client.calls, len(*sleeps))
	}
}

func TestCompleteWithRetryCeiling(t *testing.T) {
	failure := errors.New("upstream down")
	client := &scriptedClient{errs: []error{failure, failure, failure}}
	g, sleeps := newTestGateway(client, 3)

	_, err := CompleteWithRetry(context.Background(), g, "test", "prompt", 10, identity)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}

	if client.calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", client.calls)
	}

	if len(*sleeps) != 2 {
		t.Fatalf("expected exactly 2 sleeps, got %d", len(*sleeps))
	}
}

func TestCompleteWithRetryBackoffDurations(t *testing.T) {
	failure := errors.New("upstream down")
	client := &scriptedClient{errs: []error{failure, failure, failure, failure}}
	g, sleeps := newTestGateway(client, 4)

	_, _ = CompleteWithRetry(context.Background(), g, "test", "prompt", 10, identity)

	want := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(*sleeps))
	}

	for i, d := range want {
		if (*sleeps)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], d)
		}
	}
}

func TestCompleteWithRetryRateLimitBackoff(t *testing.T) {
	rateLimited := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}
	client := &scriptedClient{errs: []error{rateLimited, rateLimited, rateLimited}}
	g, sleeps := newTestGateway(client, 3)

	_, _ = CompleteWithRetry(context.Background(), g, "test", "prompt", 10, identity)

	want := []time.Duration{2 * time.Second, 3 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(*sleeps))
	}

	for i, d := range want {
		if (*sleeps)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], d)
		}
	}
}

func TestCompleteWithRetryRecoversAfterFailure(t *testing.T) {
	client := &scriptedClient{
		errs:      []error{errors.New("transient"), nil},
		responses: []string{"", "answer"},
	}
	g, sleeps := newTestGateway(client, 3)

	got, err := CompleteWithRetry(context.Background(), g, "test", "prompt", 10, identity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "answer" || client.calls != 2 {
		t.Fatalf("got %q after %d calls", got, client.calls)
	}

	if len(*sleeps) != 1 {
		t.Fatalf("expected one sleep between attempts, got %d", len(*sleeps))
	}
}

func TestCompleteWithRetryRetriesOnParseRejection(t *testing.T) {
	client := &scriptedClient{responses: []string{"garbage", "answer"}}
	g, _ := newTestGateway(client, 3)

	parse := func(raw string) (string, error) {
		if raw != "answer" {
			return "", errors.New("unexpected format")
		}

		return raw, nil
	}

	got, err := CompleteWithRetry(context.Background(), g, "test", "prompt", 10, parse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "answer" || client.calls != 2 {
		t.Fatalf("got %q after %d calls", got, client.calls)
	}
}

func TestCompleteWithRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &scriptedClient{responses: []string{"answer"}}
	g, _ := newTestGateway(client, 3)

	_, err := CompleteWithRetry(ctx, g, "test", "prompt", 10, identity)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if client.calls != 0 {
		t.Fatalf("expected no attempts after cancellation, got %d", client.calls)
	}
}

func TestIsRateLimited(t *testing.T) {
	if !isRateLimited(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}) {
		t.Error("429 API error must count as rate limited")
	}

	if isRateLimited(&openai.APIError{HTTPStatusCode: http.StatusInternalServerError}) {
		t.Error("500 API error must not count as rate limited")
	}

	if isRateLimited(errors.New("plain error")) {
		t.Error("plain error must not count as rate limited")
	}
}
