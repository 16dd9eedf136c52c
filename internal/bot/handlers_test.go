package bot

import (
	"strings"
	"sync"
	"testing"
)

func TestSuccessReply(t *testing.T) {
	got := successReply("a short summary", "technology", "https://example.com")

	if !strings.Contains(got, "Summary: a short summary") {
		t.Errorf("reply misses the summary: %q", got)
	}

	if !strings.Contains(got, "Category: Technology") {
		t.Errorf("reply misses the title-cased category: %q", got)
	}

	if !strings.Contains(got, "Source: https://example.com") {
		t.Errorf("reply misses the source: %q", got)
	}
}

func TestSuccessReplyWithoutSource(t *testing.T) {
	got := successReply("a short summary", "news", "")

	if !strings.Contains(got, "Source: not found") {
		t.Errorf("reply misses the placeholder source: %q", got)
	}
}

// Handlers run in parallel goroutines, so reply formatting must be safe for
// concurrent use. Run with -race.
func TestSuccessReplyConcurrentUse(t *testing.T) {
	const workers = 8

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				got := successReply("a short summary", "technology", "https://example.com")
				if !strings.Contains(got, "Category: Technology") {
					t.Errorf("unexpected reply: %q", got)

					return
				}
			}
		}()
	}

	wg.Wait()
}
