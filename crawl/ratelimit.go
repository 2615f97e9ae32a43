package crawl

import (
	"context"
	"sync"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"golang.org/x/time/rate"
)

var _ llmtext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to the same domain by a fixed delay.
// Each domain gets its own token bucket with a burst of one, so the first
// request proceeds immediately and later ones wait out the interval.
type DomainLimiter struct {
	delay   time.Duration
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter creates a DomainLimiter enforcing delay between
// consecutive requests to any single domain.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		delay:   delay,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the domain's delay has elapsed since its last request.
// Returns an error if the context is canceled first.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	bucket, ok := d.buckets[domain]
	if !ok {
		bucket = rate.NewLimiter(rate.Every(d.delay), 1)
		d.buckets[domain] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}
