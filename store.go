package llmtext

import "context"

// CacheStore persists the two cache tiers that make re-runs incremental:
// the discovered URL set, keyed by scope, and extracted text per URL.
// Reads never mutate stored state.
type CacheStore interface {
	// LoadURLSet returns the URL set cached under a scope key, ordered by
	// ordinal. Returns ENOTFOUND when no set is cached.
	LoadURLSet(ctx context.Context, scopeKey string) ([]URLRecord, error)

	// SaveURLSet replaces the URL set cached under a scope key.
	SaveURLSet(ctx context.Context, scopeKey string, urls []URLRecord) error

	// LoadPage returns the cached entry for a URL.
	// Returns ENOTFOUND when the page has not been cached.
	LoadPage(ctx context.Context, url string) (*CacheEntry, error)

	// SavePage inserts or overwrites the cached entry for a URL.
	SavePage(ctx context.Context, entry *CacheEntry) error
}
