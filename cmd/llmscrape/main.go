package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/crawl"
	"github.com/ivo-toby/llm-text-scraper/fs"
	"github.com/ivo-toby/llm-text-scraper/gemini"
	"github.com/ivo-toby/llm-text-scraper/goquery"
	"github.com/ivo-toby/llm-text-scraper/htmltomarkdown"
	llmhttp "github.com/ivo-toby/llm-text-scraper/http"
	"github.com/ivo-toby/llm-text-scraper/openai"
	"github.com/ivo-toby/llm-text-scraper/readability"
	"github.com/ivo-toby/llm-text-scraper/rod"
	llmslog "github.com/ivo-toby/llm-text-scraper/slog"
	"github.com/ivo-toby/llm-text-scraper/sqlite"
	"github.com/ivo-toby/llm-text-scraper/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmscrape"),
		kong.Description("Scrape a documentation site into a single llms-full.txt artifact for LLM consumption"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(yamlConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	scope := llmtext.Scope{
		BaseURL:    cli.BaseURL,
		FilterPath: cli.FilterPath,
		Selectors:  cli.CustomSelector,
	}
	if err := scope.Validate(); err != nil {
		fmt.Fprintln(stderr, "Hint: --base-url must be an absolute http(s) URL and --filter-path must start with /")
		return fmt.Errorf("invalid scope: %s", llmtext.ErrorMessage(err))
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	switch cli.Cache {
	case "sqlite":
		if err := os.MkdirAll(cli.CacheDir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
		db := sqlite.NewDB(filepath.Join(cli.CacheDir, "cache.db"))
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open cache database: %w", err)
		}
		defer db.Close()
		deps.Store = sqlite.NewStore(db)
	default:
		deps.Store = fs.NewStore(cli.CacheDir)
	}

	if cli.Static {
		deps.Renderer = llmslog.NewLoggingRenderer(llmhttp.NewRenderer(llmhttp.WithTimeout(cli.Timeout)), logger)
	} else {
		browser, err := rod.NewRenderer(rod.WithTimeout(cli.Timeout), rod.WithRenderDelay(cli.RenderDelay))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static for plain HTTP fetching")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()
		deps.Renderer = llmslog.NewLoggingRenderer(browser, logger)
	}

	// Custom selectors narrow extraction; the salvage fallback matches the
	// output mode because trafilatura emits plain text only.
	var extractorOpts []goquery.Option
	if len(cli.CustomSelector) > 0 {
		extractorOpts = append(extractorOpts, goquery.WithSelectors(cli.CustomSelector...))
	}
	if cli.Markdown {
		conv := htmltomarkdown.NewConverter()
		extractorOpts = append(extractorOpts,
			goquery.WithMarkdown(conv),
			goquery.WithFallback(readability.NewExtractor(readability.WithMarkdown(conv))),
		)
	} else {
		extractorOpts = append(extractorOpts, goquery.WithFallback(trafilatura.NewExtractor()))
	}
	deps.Extractor = goquery.NewExtractor(extractorOpts...)

	if cli.Delay > 0 {
		deps.Limiter = crawl.NewDomainLimiter(cli.Delay)
	}

	if cli.Sitemap {
		deps.Source = llmslog.NewLoggingSource(llmhttp.NewSitemapSource(nil), logger)
	} else {
		// The discoverer goes in unwrapped so the pipeline can attach its
		// inline page-caching hook.
		deps.Source = &crawl.Discoverer{
			Renderer: deps.Renderer,
			Links:    goquery.NewLinkExtractor(),
			Limiter:  deps.Limiter,
			Logger:   logger,
			MaxPages: cli.MaxPages,
		}
	}

	formatter, desc, err := buildFormatter(ctx, cli.Formatter, cli.Model)
	if err != nil {
		return err
	}
	if formatter != nil {
		deps.Formatter = llmslog.NewLoggingFormatter(formatter, logger)
	} else {
		logger.Info("no formatter configured, aggregating raw text")
	}
	deps.FormatterDesc = desc

	if counter, err := gemini.NewTokenCounter(gemini.DefaultModel); err == nil {
		deps.TokenCounter = counter
	} else {
		logger.Debug("token counter unavailable, summary will omit the token estimate", "error", err)
	}

	deps.Writer = fs.NewWriter(cli.Output)

	cmd := &ScrapeCmd{
		Scope:   scope,
		NoCache: cli.NoCache,
	}
	return cmd.Run(deps)
}

// buildFormatter selects the LLM formatter backend. In auto mode the
// available API key decides: OPENAI_API_KEY first, then GEMINI_API_KEY,
// then none. Returns a description of the selection for the summary.
func buildFormatter(ctx context.Context, backend, model string) (llmtext.Formatter, string, error) {
	switch backend {
	case "none":
		return nil, "none", nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return newOpenAIFormatter(key, model)
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil, "", fmt.Errorf("GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		}
		return newGeminiFormatter(ctx, key, model)
	default: // auto
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return newOpenAIFormatter(key, model)
		}
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return newGeminiFormatter(ctx, key, model)
		}
		return nil, "none", nil
	}
}

func newOpenAIFormatter(key, model string) (llmtext.Formatter, string, error) {
	if model == "" {
		model = openai.DefaultModel
	}
	return openai.NewFormatter(key, model), "openai (" + model + ")", nil
}

func newGeminiFormatter(ctx context.Context, key, model string) (llmtext.Formatter, string, error) {
	client, err := gemini.NewClient(ctx, key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	if model == "" {
		model = gemini.DefaultModel
	}
	return gemini.NewFormatter(client, model), "gemini (" + model + ")", nil
}
