package llmtext

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, from the primary heading or document title.
	Title string

	// Text is the readable page content with boilerplate removed.
	Text string
}

// Extractor pulls readable content out of rendered HTML, removing
// boilerplate. The content-matching policy (custom selectors vs landmark
// search) is fixed at construction.
type Extractor interface {
	// Extract processes raw HTML and returns the page title and text.
	// Returns ENOTFOUND when no usable content can be found.
	Extract(html string) (*ExtractResult, error)
}
