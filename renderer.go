package llmtext

import "context"

// Renderer retrieves rendered HTML from URLs.
// Implementations may drive a headless browser to execute JavaScript, or
// perform a plain GET for static sites.
type Renderer interface {
	// Render navigates to the URL and returns the page HTML.
	// The context controls timeout and cancellation.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases renderer resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
