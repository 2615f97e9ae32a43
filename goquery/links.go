package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Ensure LinkExtractor implements llmtext.LinkExtractor at compile time.
var _ llmtext.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor pulls anchor targets out of rendered HTML. Targets are
// resolved against the page URL and reduced to their normalized identity,
// so fragment and query variants collapse to one link. Self-references and
// non-HTTP schemes are dropped. Scope filtering is the caller's job.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks implements llmtext.LinkExtractor.
func (e *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, llmtext.Errorf(llmtext.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}
	self, err := llmtext.NormalizeURL(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, llmtext.Errorf(llmtext.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		normalized, err := llmtext.NormalizeURL(base.ResolveReference(ref).String())
		if err != nil {
			return
		}
		if normalized == self || seen[normalized] {
			return
		}
		seen[normalized] = true
		links = append(links, normalized)
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
