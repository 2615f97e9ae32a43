package llmtext

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is the extracted content region of a page.
	Convert(html string) (string, error)
}
