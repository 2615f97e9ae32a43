// Package rod provides a headless-Chrome implementation of llmtext.Renderer
// for documentation sites that build their content with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

const (
	// DefaultRenderDelay is how long to wait after page load for
	// client-side rendering to settle.
	DefaultRenderDelay = 3 * time.Second

	// DefaultRenderTimeout bounds a single page render end to end.
	DefaultRenderTimeout = 90 * time.Second
)

// Ensure Renderer implements llmtext.Renderer at compile time.
var _ llmtext.Renderer = (*Renderer)(nil)

// Renderer retrieves rendered HTML from URLs using Chrome browser automation.
// The underlying browser is recycled periodically, see BrowserManager.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	manager     *BrowserManager
	renderDelay time.Duration
	timeout     time.Duration
	maxPages    int64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderDelay sets the wait after page load before capturing HTML.
// Defaults to DefaultRenderDelay (3s).
func WithRenderDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.renderDelay = d
	}
}

// WithTimeout sets the per-page render timeout.
// Defaults to DefaultRenderTimeout (90s).
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithMaxPagesPerBrowser sets how many pages a browser instance serves
// before being recycled. Defaults to DefaultMaxPagesPerBrowser (75).
func WithMaxPagesPerBrowser(n int64) Option {
	return func(r *Renderer) {
		r.maxPages = n
	}
}

// NewRenderer creates a Renderer backed by a fresh headless Chrome browser.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		renderDelay: DefaultRenderDelay,
		timeout:     DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	var managerOpts []ManagerOption
	if r.maxPages > 0 {
		managerOpts = append(managerOpts, WithMaxPages(r.maxPages))
	}
	manager, err := NewBrowserManager(managerOpts...)
	if err != nil {
		return nil, err
	}
	r.manager = manager

	return r, nil
}

// Render navigates to the URL, waits for the page to settle, and returns
// the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	browser, err := r.manager.Acquire()
	if err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "failed to render %s: %v", url, err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "failed to open browser page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "failed to render %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "failed to render %s: %v", url, err)
	}

	// Let client-side rendering finish before capturing the DOM.
	if r.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "failed to render %s: %v", url, err)
	}

	return html, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	return r.manager.LauncherPID()
}
