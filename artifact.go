package llmtext

import "strings"

// artifactDelimiter frames each page block in the rendered artifact.
const artifactDelimiter = "----------------------------------------"

// Artifact is the aggregated output document: a header naming the source
// site and scoped region, followed by one block per page.
type Artifact struct {
	BaseURL          string
	ScopeDescription string
	Pages            []Page
}

// Render produces the artifact text. The layout is fixed: a title line, a
// sub-header line naming the scoped region, a blank line, then page blocks
// separated by blank lines. Each block carries a delimiter line, the title
// (when present), the URL, a matching delimiter line, a blank line, and the
// page text. The document has no trailing newline.
func (a *Artifact) Render() string {
	blocks := make([]string, 0, len(a.Pages))
	for _, p := range a.Pages {
		var b strings.Builder
		b.WriteString(artifactDelimiter + "\n")
		if p.Title != "" {
			b.WriteString(p.Title + "\n")
		}
		b.WriteString(p.URL + "\n")
		b.WriteString(artifactDelimiter + "\n\n")
		b.WriteString(strings.TrimSpace(p.Text))
		blocks = append(blocks, b.String())
	}
	return "# Documentation from " + a.BaseURL + "\n" +
		"> Extracted content from " + a.ScopeDescription + "\n\n" +
		strings.Join(blocks, "\n\n")
}
