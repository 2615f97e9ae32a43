package llmtext

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Scope bounds a crawl to a region of a site and carries the extraction
// policy that applies within it. BaseURL is the crawl seed and origin
// anchor. FilterPath, when set, narrows the crawl to URLs under that path
// prefix. Selectors, when set, override the default landmark search during
// extraction; they are part of the scope because cached content extracted
// under one policy is not interchangeable with another.
type Scope struct {
	BaseURL    string
	FilterPath string
	Selectors  []string
}

// NormalizeURL reduces a URL to its canonical identity: an absolute http or
// https URL with lowercased scheme and host, fragment and query dropped,
// and the trailing slash removed (the root path stays "/").
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(EINVALID, "URL %q is not http(s)", raw)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return scheme + "://" + strings.ToLower(u.Host) + path, nil
}

// Validate checks that the scope can anchor a crawl.
func (s Scope) Validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return Errorf(EINVALID, "base URL required")
	}
	if _, err := NormalizeURL(s.BaseURL); err != nil {
		return err
	}
	if s.FilterPath != "" && !strings.HasPrefix(s.FilterPath, "/") {
		return Errorf(EINVALID, "filter path must start with /: %q", s.FilterPath)
	}
	for _, sel := range s.Selectors {
		if strings.TrimSpace(sel) == "" {
			return Errorf(EINVALID, "selectors must not be empty")
		}
	}
	return nil
}

// Allows reports whether a URL falls inside the scope: same scheme and host
// as the base URL, and, when FilterPath is set, a path within it. Prefix
// matching is on segment boundaries, so /docs matches /docs/guide but not
// /docs-v2, and the filter path itself is in scope with or without its
// trailing slash.
func (s Scope) Allows(rawURL string) bool {
	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	base, err := NormalizeURL(s.BaseURL)
	if err != nil {
		return false
	}
	nu, _ := url.Parse(norm)
	bu, _ := url.Parse(base)
	if nu.Scheme != bu.Scheme || nu.Host != bu.Host {
		return false
	}
	if s.FilterPath == "" {
		return true
	}
	return pathWithin(nu.EscapedPath(), s.FilterPath)
}

func pathWithin(path, prefix string) bool {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return strings.HasPrefix(path, prefix)
}

// Key returns a stable cache key for the scope tuple. Scopes that differ in
// base URL identity, filter path, or selector policy never share a key.
func (s Scope) Key() string {
	base, err := NormalizeURL(s.BaseURL)
	if err != nil {
		base = s.BaseURL
	}
	parts := append([]string{base, strings.TrimSuffix(s.FilterPath, "/")}, s.Selectors...)
	return fmt.Sprintf("%x", xxhash.Sum64String(strings.Join(parts, "\n")))
}

// Description names the scoped region for display: the filter path when
// set, "/" otherwise.
func (s Scope) Description() string {
	if s.FilterPath == "" {
		return "/"
	}
	return s.FilterPath
}
