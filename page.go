package llmtext

import (
	"net/url"
	"strings"
	"time"
	"unicode"
)

// URLRecord is one discovered URL with its position in discovery order.
// Ordinals start at zero with the seed and determine artifact page order.
type URLRecord struct {
	URL     string `json:"url"`
	Ordinal int    `json:"ordinal"`
}

// CacheEntry holds extracted page content as persisted in the page cache.
// Text is the pre-format extraction result, so cached pages can be
// re-formatted without re-fetching.
type CacheEntry struct {
	URL       string
	Title     string
	Text      string
	FetchedAt time.Time
}

// Page is a processed page ready for aggregation.
type Page struct {
	URL     string
	Title   string
	Text    string
	Ordinal int
}

// TitleFromURL derives a display title from the last path segment of a URL.
// Dashes and underscores become spaces and words are capitalized.
// Returns "Home" for the root path or an unparseable URL.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "Home"
	}
	seg := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	words := strings.Fields(seg)
	if len(words) == 0 {
		return "Home"
	}
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
