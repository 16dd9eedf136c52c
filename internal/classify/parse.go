package classify

import (
	"strconv"
	"strings"
)

const (
	// CategoryGeneral is the fallback label when classification is absent or
	// the gateway gave up.
	CategoryGeneral = "general"
	// CategoryReview marks low-confidence results for manual attention.
	CategoryReview = "review"

	defaultConfidence = 0.5
)

// Parsed is a classification response reduced to its two label values.
type Parsed struct {
	Category   string
	Confidence float64
}

// parseResponse scans the raw completion text for "Category:" and
// "Confidence:" label lines, taking the value after the first colon on each.
// A missing category falls back to CategoryGeneral, an unparseable confidence
// to 0.5. The second return is false when no label line was recognized at all.
func parseResponse(raw string) (Parsed, bool) {
	parsed := Parsed{Category: CategoryGeneral, Confidence: defaultConfidence}
	recognized := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "category:"):
			recognized = true

			if value := labelValue(line); value != "" {
				parsed.Category = value
			}
		case strings.HasPrefix(lower, "confidence:"):
			recognized = true

			if confidence, err := strconv.ParseFloat(labelValue(line), 64); err == nil {
				parsed.Confidence = clamp(confidence)
			}
		}
	}

	return parsed, recognized
}

func labelValue(line string) string {
	_, after, _ := strings.Cut(line, ":")

	return strings.Trim(strings.TrimSpace(after), `"'`)
}

func clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}

	if confidence > 1 {
		return 1
	}

	return confidence
}
