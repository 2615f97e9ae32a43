package llmtext

import "context"

// TokenCounter counts tokens in text for a specific model. Used to report
// the approximate LLM context cost of a rendered artifact.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
