package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	llmtext "github.com/ivo-toby/llm-text-scraper"
	"golang.org/x/net/html"
)

// landmarkSelectors are the default content candidates, tried in priority
// order when no custom selectors are configured.
var landmarkSelectors = []string{
	"article",
	"div.col-content",
	"div.markdown-body",
	"section.main-content",
	"div.doc-content",
	"main",
}

// minContentLength is the threshold below which a candidate region counts
// as empty and the next candidate is tried.
const minContentLength = 50

// Ensure Extractor implements llmtext.Extractor at compile time.
var _ llmtext.Extractor = (*Extractor)(nil)

// Extractor isolates documentation content from rendered HTML. Custom
// selectors, when configured, take precedence over the default landmark
// search; pages where neither yields content fall back to the stripped
// page body, then to the optional fallback extractor.
type Extractor struct {
	selectors []string
	converter llmtext.Converter
	fallback  llmtext.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors sets custom CSS selectors that replace the landmark
// search. Each selector's matches are concatenated in document order;
// elements matched by more than one selector are included once.
func WithSelectors(selectors ...string) Option {
	return func(e *Extractor) {
		e.selectors = selectors
	}
}

// WithMarkdown renders matched regions through conv instead of the
// plain-text walk.
func WithMarkdown(conv llmtext.Converter) Option {
	return func(e *Extractor) {
		e.converter = conv
	}
}

// WithFallback sets the extractor consulted when no candidate region
// yields content.
func WithFallback(next llmtext.Extractor) Option {
	return func(e *Extractor) {
		e.fallback = next
	}
}

// NewExtractor creates an Extractor with the given options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract implements llmtext.Extractor.
func (e *Extractor) Extract(rawHTML string) (*llmtext.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, llmtext.Errorf(llmtext.EINVALID, "failed to parse HTML: %v", err)
	}

	text, err := e.content(doc)
	if err != nil {
		return nil, err
	}
	if text == "" {
		if e.fallback != nil {
			return e.fallback.Extract(rawHTML)
		}
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no content found in page")
	}

	return &llmtext.ExtractResult{Title: pageTitle(doc), Text: text}, nil
}

// content renders the best candidate region, or "" when no candidate
// yields enough text.
func (e *Extractor) content(doc *goquery.Document) (string, error) {
	if len(e.selectors) > 0 {
		text, err := e.selectorContent(doc)
		if err != nil || text != "" {
			return text, err
		}
	}
	for _, selector := range landmarkSelectors {
		text, err := e.regionContent(doc.Find(selector).First())
		if err != nil || text != "" {
			return text, err
		}
	}
	if div := densestDiv(doc); div != nil {
		text, err := e.regionContent(div)
		if err != nil || text != "" {
			return text, err
		}
	}
	return e.regionContent(doc.Find("body"))
}

// selectorContent concatenates the rendered text of every subtree matched
// by the custom selectors, applied in order.
func (e *Extractor) selectorContent(doc *goquery.Document) (string, error) {
	seen := make(map[*html.Node]bool)
	var parts []string
	for _, selector := range e.selectors {
		for _, node := range doc.Find(selector).Nodes {
			if seen[node] {
				continue
			}
			seen[node] = true
			part, err := e.render(node)
			if err != nil {
				return "", err
			}
			if part != "" {
				parts = append(parts, part)
			}
		}
	}
	text := strings.Join(parts, "\n\n")
	if len(text) < minContentLength {
		return "", nil
	}
	return text, nil
}

func (e *Extractor) regionContent(sel *goquery.Selection) (string, error) {
	if sel == nil || sel.Length() == 0 {
		return "", nil
	}
	text, err := e.render(sel.Nodes[0])
	if err != nil {
		return "", err
	}
	if len(text) < minContentLength {
		return "", nil
	}
	return text, nil
}

// render converts a region subtree to output text, through the Markdown
// converter when one is configured.
func (e *Extractor) render(node *html.Node) (string, error) {
	if e.converter == nil {
		return renderText(node), nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return "", llmtext.Errorf(llmtext.EINTERNAL, "failed to render content region: %v", err)
	}
	markdown, err := e.converter.Convert(buf.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

// densestDiv returns the div holding the most text, a last-resort guess at
// the content region for pages without semantic landmarks.
func densestDiv(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := 0
	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		if n := len(strings.TrimSpace(sel.Text())); n > bestLen {
			best, bestLen = sel, n
		}
	})
	return best
}

// pageTitle returns the first h1's text, falling back to the document
// title. Internal whitespace is collapsed.
func pageTitle(doc *goquery.Document) string {
	if title := strings.Join(strings.Fields(doc.Find("h1").First().Text()), " "); title != "" {
		return title
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
