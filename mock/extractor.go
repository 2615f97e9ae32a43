package mock

import (
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.Extractor = (*Extractor)(nil)

// Extractor is a test double for llmtext.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*llmtext.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*llmtext.ExtractResult, error) {
	return e.ExtractFn(html)
}
