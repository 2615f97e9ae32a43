package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Ensure Converter implements llmtext.Converter at compile time.
var _ llmtext.Converter = (*Converter)(nil)

// Converter turns extracted HTML regions into CommonMark, with table
// support for API reference pages.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert implements llmtext.Converter.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", llmtext.Errorf(llmtext.EINVALID, "empty HTML input")
	}

	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return "", llmtext.Errorf(llmtext.EINTERNAL, "markdown conversion failed: %v", err)
	}

	return markdown, nil
}
