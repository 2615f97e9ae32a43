// Package readability implements llmtext.Extractor using the go-shiori
// readability library. It recovers article content from pages where
// selector and landmark strategies come up empty, and can emit markdown
// when configured with a converter.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Extractor recovers the main article content from an HTML document.
type Extractor struct {
	converter llmtext.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMarkdown makes the extractor return the article as markdown,
// converted from the recovered content HTML.
func WithMarkdown(c llmtext.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor returns a new readability-based Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract recovers the main article from rawHTML, dropping navigation and
// other boilerplate. By default the result text is the article's plain
// text; with WithMarkdown it is the converted content HTML.
func (e *Extractor) Extract(rawHTML string) (*llmtext.ExtractResult, error) {
	if rawHTML == "" {
		return nil, llmtext.Errorf(llmtext.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "article extraction failed: %v", err)
	}

	text, err := e.articleText(article)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no content found in page")
	}

	return &llmtext.ExtractResult{
		Title: article.Title,
		Text:  text,
	}, nil
}

func (e *Extractor) articleText(article readability.Article) (string, error) {
	if e.converter == nil {
		return strings.TrimSpace(article.TextContent), nil
	}
	content := strings.TrimSpace(article.Content)
	if content == "" {
		return "", nil
	}
	markdown, err := e.converter.Convert(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
