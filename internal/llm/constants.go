package llm

const (
	apiKeyMock = "mock"

	// Output token budgets per prompt kind.
	ClassifyMaxTokens       = 200
	DuplicateCheckMaxTokens = 50
	SummaryMaxTokens        = 300

	// DefaultMaxRetries bounds gateway attempts per call.
	DefaultMaxRetries = 3
)
