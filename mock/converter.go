package mock

import (
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.Converter = (*Converter)(nil)

// Converter is a test double for llmtext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
