// Package http provides an HTTP-based implementation of llmtext.Renderer
// for static sites that don't require JavaScript rendering, and sitemap
// based URL discovery.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies the scraper to servers.
const DefaultUserAgent = "llmscrape/1.0"

// Ensure Renderer implements llmtext.Renderer at compile time.
var _ llmtext.Renderer = (*Renderer)(nil)

// Renderer retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Renderer, this does not execute JavaScript and is suitable
// for static sites only.
type Renderer struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// NewRenderer creates a new HTTP-based Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// Render retrieves the HTML content from the given URL.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", llmtext.Errorf(llmtext.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP renderer this is a no-op since
// http.Client doesn't require explicit cleanup.
func (r *Renderer) Close() error {
	return nil
}
