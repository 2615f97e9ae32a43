package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL        string          `name:"base-url" required:"" help:"Base URL of the documentation site: crawl seed and scope origin."`
	FilterPath     string          `name:"filter-path" help:"Restrict the crawl to paths under this prefix (must start with /)."`
	CustomSelector []string        `name:"custom-selector" help:"CSS selectors for content extraction, applied in order. Comma-separated or repeated."`
	Output         string          `short:"o" default:"llms-full.txt" help:"Artifact output path."`
	CacheDir       string          `name:"cache-dir" default:"tmp" help:"Directory for the URL-set and page caches."`
	Cache          string          `enum:"fs,sqlite" default:"fs" help:"Cache backend (fs or sqlite)."`
	NoCache        bool            `name:"no-cache" help:"Bypass the cache: re-discover and re-fetch every page."`
	Static         bool            `help:"Fetch pages with plain HTTP instead of headless Chrome."`
	Sitemap        bool            `help:"Discover URLs from sitemap.xml instead of crawling links."`
	Markdown       bool            `help:"Emit page content as markdown instead of plain text."`
	Delay          time.Duration   `default:"1s" help:"Politeness delay between requests to the same host."`
	RenderDelay    time.Duration   `name:"render-delay" default:"3s" help:"Wait after page load for client-side rendering to settle."`
	Timeout        time.Duration   `default:"90s" help:"Per-page render timeout."`
	MaxPages       int             `name:"max-pages" default:"1000" help:"Upper bound on discovered pages."`
	Formatter      string          `enum:"auto,openai,gemini,none" default:"auto" help:"LLM formatter backend. Auto picks by available API key."`
	Model          string          `help:"Override the formatter model."`
	Config         kong.ConfigFlag `help:"YAML file providing flag defaults. Explicit flags win."`
	Verbose        bool            `short:"v" help:"Enable debug logging."`
}

// Dependencies holds the wired services for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Source       llmtext.URLSource
	Store        llmtext.CacheStore
	Renderer     llmtext.Renderer
	Extractor    llmtext.Extractor
	Formatter    llmtext.Formatter // nil aggregates raw text
	Writer       llmtext.ArtifactWriter
	TokenCounter llmtext.TokenCounter // nil omits the token estimate
	Limiter      llmtext.DomainLimiter
	Logger       *slog.Logger

	// FormatterDesc names the formatter backend for the summary.
	FormatterDesc string
}
