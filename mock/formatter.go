package mock

import (
	"context"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.Formatter = (*Formatter)(nil)

// Formatter is a test double for llmtext.Formatter.
type Formatter struct {
	FormatFn func(ctx context.Context, text, pageURL string) (string, error)
}

func (f *Formatter) Format(ctx context.Context, text, pageURL string) (string, error) {
	return f.FormatFn(ctx, text, pageURL)
}
