package trafilatura

import (
	"strings"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements llmtext.Extractor at compile time.
var _ llmtext.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as a salvage extractor for pages where
// selector-based extraction finds nothing usable. Its readability
// heuristics locate content without depending on page structure.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements llmtext.Extractor.
func (e *Extractor) Extract(rawHTML string) (*llmtext.ExtractResult, error) {
	if rawHTML == "" {
		return nil, llmtext.Errorf(llmtext.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "content extraction failed: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no content found in page")
	}

	return &llmtext.ExtractResult{
		Title: result.Metadata.Title,
		Text:  text,
	}, nil
}
