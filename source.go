package llmtext

import "context"

// URLSource discovers the set of in-scope page URLs for a crawl.
// Implementations hide breadth-first link discovery vs sitemap listing.
type URLSource interface {
	// Discover returns in-scope URLs with discovery ordinals assigned.
	// The result is ordered by ordinal and free of duplicates.
	// Returns ENOTFOUND when nothing in scope can be discovered.
	Discover(ctx context.Context, scope Scope) ([]URLRecord, error)
}

// LinkExtractor pulls anchor targets out of rendered HTML.
type LinkExtractor interface {
	// ExtractLinks returns the absolute, normalized targets of the page's
	// anchor elements, resolved against pageURL. Non-HTTP schemes and
	// fragment-only links are dropped. Scope filtering is the caller's
	// concern.
	ExtractLinks(html, pageURL string) ([]string, error)
}
