package mock

import (
	"context"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.Renderer = (*Renderer)(nil)

// Renderer is a test double for llmtext.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}
