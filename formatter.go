package llmtext

import "context"

// Formatter rewrites extracted page text into a form optimized for LLM
// consumption. Formatting is best-effort: callers fall back to the raw
// text when a Formatter is unavailable or fails.
type Formatter interface {
	// Format returns a cleaned-up version of the page text.
	// pageURL identifies the page for prompt context.
	Format(ctx context.Context, text, pageURL string) (string, error)
}
