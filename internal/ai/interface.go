package ai

import "context"

// IntentExtractor defines the contract for turning a free-text food query into
// a structured Intent. Implementations exist for Gemini and OpenAI; the one to
// use is selected once at startup from configuration.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, query string) (*Intent, error)
}
