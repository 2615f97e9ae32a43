package crawl

import "fmt"

// TruncateURL shortens a URL to fit a single progress line, keeping the
// tail where the page path lives.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(url) <= maxLen {
		return url
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return url[:maxLen]
	}
	return ellipsis + url[len(url)-maxLen+len(ellipsis):]
}

// FormatBytes renders a byte count for the run summary.
func FormatBytes(n int) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}

// FormatTokens renders an approximate token count, in thousands from 1k up.
func FormatTokens(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("~%dk tokens", (n+500)/1000)
	}
	return fmt.Sprintf("~%d tokens", n)
}
