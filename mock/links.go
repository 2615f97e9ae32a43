package mock

import (
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a test double for llmtext.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, pageURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	return l.ExtractLinksFn(html, pageURL)
}
