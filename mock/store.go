package mock

import (
	"context"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.CacheStore = (*CacheStore)(nil)

// CacheStore is a test double for llmtext.CacheStore.
type CacheStore struct {
	LoadURLSetFn func(ctx context.Context, scopeKey string) ([]llmtext.URLRecord, error)
	SaveURLSetFn func(ctx context.Context, scopeKey string, urls []llmtext.URLRecord) error
	LoadPageFn   func(ctx context.Context, url string) (*llmtext.CacheEntry, error)
	SavePageFn   func(ctx context.Context, entry *llmtext.CacheEntry) error
}

func (s *CacheStore) LoadURLSet(ctx context.Context, scopeKey string) ([]llmtext.URLRecord, error) {
	return s.LoadURLSetFn(ctx, scopeKey)
}

func (s *CacheStore) SaveURLSet(ctx context.Context, scopeKey string, urls []llmtext.URLRecord) error {
	return s.SaveURLSetFn(ctx, scopeKey, urls)
}

func (s *CacheStore) LoadPage(ctx context.Context, url string) (*llmtext.CacheEntry, error) {
	return s.LoadPageFn(ctx, url)
}

func (s *CacheStore) SavePage(ctx context.Context, entry *llmtext.CacheEntry) error {
	return s.SavePageFn(ctx, entry)
}
