package mock

import (
	"context"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a test double for llmtext.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
