package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Ensure SitemapSource implements llmtext.URLSource.
var _ llmtext.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers in-scope URLs from a site's sitemap.xml instead
// of crawling. Ordinals follow document order within each sitemap and
// breadth-first order across nested sitemap indexes, mirroring how the
// crawling discoverer numbers its frontier.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Discover implements llmtext.URLSource. It fetches <root>/sitemap.xml,
// follows sitemap indexes (cycle-safe), and returns the scope-allowed URLs.
func (s *SitemapSource) Discover(ctx context.Context, scope llmtext.Scope) ([]llmtext.URLRecord, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	seed, err := llmtext.NormalizeURL(scope.BaseURL)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(seed)
	if err != nil {
		return nil, err
	}

	// Sitemaps live at the domain root regardless of the base URL path.
	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()

	urls, err := s.collectURLs(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var records []llmtext.URLRecord
	seenURLs := make(map[string]bool)
	for _, raw := range urls {
		normalized, err := llmtext.NormalizeURL(raw)
		if err != nil {
			continue
		}
		if !scope.Allows(normalized) || seenURLs[normalized] {
			continue
		}
		seenURLs[normalized] = true
		records = append(records, llmtext.URLRecord{URL: normalized, Ordinal: len(records)})
	}

	if len(records) == 0 {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no pages in scope found in sitemap at %s", sitemapURL)
	}
	return records, nil
}

// collectURLs walks the sitemap tree starting at start. Index documents
// enqueue their child sitemaps; urlset documents contribute page URLs. A
// seen set keeps malformed indexes that reference each other from looping.
func (s *SitemapSource) collectURLs(ctx context.Context, start string) ([]string, error) {
	var urls []string
	queue := []string{start}
	seen := map[string]bool{start: true}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next := queue[0]
		queue = queue[1:]

		children, pages, err := s.readSitemap(ctx, next)
		if err != nil {
			return nil, err
		}
		urls = append(urls, pages...)

		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			queue = append(queue, child)
		}
	}

	return urls, nil
}

// readSitemap fetches one sitemap document and splits it into child
// sitemap URLs (from a <sitemapindex>) and page URLs (from a <urlset>).
func (s *SitemapSource) readSitemap(ctx context.Context, sitemapURL string) (children, pages []string, err error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return locations(root, "sitemap"), nil, nil
	}
	return nil, locations(root, "url"), nil
}

// locations gathers the non-empty <loc> values under each child element
// with the given tag, in document order.
func locations(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			locs = append(locs, v)
		}
	}
	return locs
}

// get fetches a URL and returns the response body.
func (s *SitemapSource) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no sitemap at %s", targetURL)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, llmtext.Errorf(llmtext.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
