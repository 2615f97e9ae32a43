package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Separator levels between text runs. When several separators are pending
// the strongest one wins.
const (
	sepNone = iota
	sepSpace
	sepLine
	sepBlank
)

// skipElements are subtrees that never contribute content text.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"iframe":   true,
	"svg":      true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

// blockElements start and end a paragraph.
var blockElements = map[string]bool{
	"address":    true,
	"article":    true,
	"blockquote": true,
	"details":    true,
	"dialog":     true,
	"div":        true,
	"dl":         true,
	"fieldset":   true,
	"figcaption": true,
	"figure":     true,
	"form":       true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"hr":         true,
	"main":       true,
	"ol":         true,
	"p":          true,
	"section":    true,
	"table":      true,
	"ul":         true,
}

// lineElements start and end a single line.
var lineElements = map[string]bool{
	"li":      true,
	"tr":      true,
	"dt":      true,
	"dd":      true,
	"caption": true,
}

// cellElements are separated from their siblings by a space.
var cellElements = map[string]bool{
	"td": true,
	"th": true,
}

// renderText converts a DOM subtree to readable plain text. Block elements
// are separated by blank lines, runs of inline whitespace collapse to a
// single space, and <pre> content is kept verbatim inside code fences.
// Script, style, and page-chrome subtrees (nav, header, footer, aside) are
// skipped unless the subtree root itself is one.
func renderText(n *html.Node) string {
	r := &textRenderer{}
	r.walk(n, true)
	return r.b.String()
}

type textRenderer struct {
	b   strings.Builder
	sep int
}

func (r *textRenderer) walk(n *html.Node, root bool) {
	switch n.Type {
	case html.TextNode:
		r.text(n.Data)
	case html.ElementNode:
		if !root && skipElements[n.Data] {
			return
		}
		if n.Data == "pre" {
			r.codeBlock(n)
			return
		}
		if n.Data == "br" {
			r.want(sepLine)
			return
		}
		level := separatorFor(n.Data)
		r.want(level)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.walk(c, false)
		}
		r.want(level)
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.walk(c, false)
		}
	}
}

func separatorFor(tag string) int {
	switch {
	case blockElements[tag]:
		return sepBlank
	case lineElements[tag]:
		return sepLine
	case cellElements[tag]:
		return sepSpace
	}
	return sepNone
}

// text appends a text node's words, collapsing internal whitespace and
// recording boundary whitespace as a pending space separator.
func (r *textRenderer) text(s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" {
			r.want(sepSpace)
		}
		return
	}
	if first, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(first) {
		r.want(sepSpace)
	}
	for i, word := range words {
		if i == 0 {
			r.flush()
		} else {
			r.b.WriteByte(' ')
		}
		r.b.WriteString(word)
	}
	if last, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(last) {
		r.want(sepSpace)
	}
}

// codeBlock emits the verbatim text of a <pre> subtree inside a code fence.
func (r *textRenderer) codeBlock(n *html.Node) {
	code := strings.Trim(rawText(n), "\n")
	if strings.TrimSpace(code) == "" {
		return
	}
	r.want(sepBlank)
	r.flush()
	r.b.WriteString("```\n")
	r.b.WriteString(code)
	r.b.WriteString("\n```")
	r.want(sepBlank)
}

// want records a pending separator to emit before the next text run.
func (r *textRenderer) want(level int) {
	if level > r.sep {
		r.sep = level
	}
}

// flush writes the pending separator. Separators before the first text run
// are dropped so output never starts with whitespace.
func (r *textRenderer) flush() {
	if r.b.Len() == 0 {
		r.sep = sepNone
		return
	}
	switch r.sep {
	case sepSpace:
		r.b.WriteByte(' ')
	case sepLine:
		r.b.WriteByte('\n')
	case sepBlank:
		r.b.WriteString("\n\n")
	}
	r.sep = sepNone
}

// rawText concatenates every text node in the subtree without collapsing.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
