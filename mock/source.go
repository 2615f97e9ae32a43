package mock

import (
	"context"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.URLSource = (*URLSource)(nil)

// URLSource is a test double for llmtext.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, scope llmtext.Scope) ([]llmtext.URLRecord, error)
}

func (s *URLSource) Discover(ctx context.Context, scope llmtext.Scope) ([]llmtext.URLRecord, error) {
	return s.DiscoverFn(ctx, scope)
}
