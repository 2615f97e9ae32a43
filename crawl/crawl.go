// Package crawl orchestrates the scraping pipeline: URL discovery, per-page
// rendering and extraction backed by the cache, optional LLM formatting,
// and artifact assembly.
package crawl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Pipeline runs a scrape end to end. Pages are processed sequentially in
// discovery order; per-page failures are recorded and skipped rather than
// aborting the run.
type Pipeline struct {
	Scope        llmtext.Scope
	Source       llmtext.URLSource
	Store        llmtext.CacheStore
	Renderer     llmtext.Renderer
	Extractor    llmtext.Extractor
	Formatter    llmtext.Formatter // nil disables formatting
	Writer       llmtext.ArtifactWriter
	TokenCounter llmtext.TokenCounter // nil disables the token estimate
	Limiter      llmtext.DomainLimiter
	Logger       *slog.Logger

	// NoCache bypasses both cache tiers: the URL set is re-discovered and
	// pages are re-fetched, overwriting existing entries.
	NoCache bool

	// RetryDelays overrides the render retry backoff. DefaultRetryDelays when nil.
	RetryDelays []time.Duration

	// Progress receives per-page events.
	Progress ProgressFunc

	// visited tracks pages rendered and cached during this run's discovery,
	// so the fetch phase counts them as fetched rather than from cache.
	visited map[string]bool
}

// PageFailure records a page that was skipped and why.
type PageFailure struct {
	URL string
	Err error
}

// Result summarizes a completed run.
type Result struct {
	// Discovered is the size of the URL set.
	Discovered int

	// URLSetFromCache is true when the URL set was loaded from the cache
	// instead of being discovered this run.
	URLSetFromCache bool

	// FromCache counts pages served from a previous run's cache; Fetched
	// counts pages rendered during this run.
	FromCache int
	Fetched   int

	// Skipped counts pages dropped after render or extraction failures.
	Skipped int

	// Unformatted counts pages aggregated with raw extracted text because
	// no formatter was configured or formatting failed.
	Unformatted int

	// OutputPath is where the artifact was written.
	OutputPath string

	// Bytes and Tokens describe the rendered artifact. Tokens is zero when
	// no token counter is configured.
	Bytes  int
	Tokens int

	// Failures lists the skipped pages with their errors.
	Failures []PageFailure
}

// Run executes the pipeline and returns a summary of the outcome.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.Scope.Validate(); err != nil {
		return nil, err
	}
	if p.Source == nil || p.Store == nil || p.Renderer == nil || p.Extractor == nil || p.Writer == nil {
		return nil, llmtext.Errorf(llmtext.EINVALID, "pipeline is missing required components")
	}
	p.visited = make(map[string]bool)

	records, fromCache, err := p.urlSet(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Discovered:      len(records),
		URLSetFromCache: fromCache,
	}

	pages := make([]llmtext.Page, 0, len(records))
	for i, rec := range records {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		page, cached, err := p.processPage(ctx, rec)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			result.Skipped++
			result.Failures = append(result.Failures, PageFailure{URL: rec.URL, Err: err})
			p.emit(ProgressEvent{Stage: StageFetch, Type: ProgressFailed, Completed: i + 1, Total: len(records), URL: rec.URL, Error: err})
			continue
		}

		if cached && !p.visited[rec.URL] {
			result.FromCache++
			p.emit(ProgressEvent{Stage: StageFetch, Type: ProgressCached, Completed: i + 1, Total: len(records), URL: rec.URL})
		} else {
			result.Fetched++
			p.emit(ProgressEvent{Stage: StageFetch, Type: ProgressFetched, Completed: i + 1, Total: len(records), URL: rec.URL})
		}
		pages = append(pages, page)
	}

	if len(pages) == 0 {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no content extracted from any of %d pages", len(records))
	}

	if err := p.formatPages(ctx, pages, result); err != nil {
		return nil, err
	}

	artifact := &llmtext.Artifact{
		BaseURL:          strings.TrimSuffix(strings.TrimSpace(p.Scope.BaseURL), "/"),
		ScopeDescription: p.Scope.Description(),
		Pages:            pages,
	}

	p.emit(ProgressEvent{Stage: StageWrite, Type: ProgressStarted, URL: artifact.BaseURL})
	path, err := p.Writer.Write(ctx, artifact)
	if err != nil {
		return nil, err
	}
	result.OutputPath = path

	rendered := artifact.Render()
	result.Bytes = len(rendered)
	if p.TokenCounter != nil {
		if tokens, err := p.TokenCounter.CountTokens(ctx, rendered); err == nil {
			result.Tokens = tokens
		} else {
			p.logger().Debug("token count failed", "error", err)
		}
	}
	p.emit(ProgressEvent{Stage: StageWrite, Type: ProgressFinished, URL: path})

	return result, nil
}

// urlSet loads the cached URL set for the scope, or discovers it and caches
// the result. When the source is this package's Discoverer, freshly
// rendered pages are extracted and cached inline so the fetch phase does
// not render them a second time.
func (p *Pipeline) urlSet(ctx context.Context) ([]llmtext.URLRecord, bool, error) {
	key := p.Scope.Key()

	if !p.NoCache {
		records, err := p.Store.LoadURLSet(ctx, key)
		if err == nil {
			return records, true, nil
		}
		if llmtext.ErrorCode(err) != llmtext.ENOTFOUND {
			return nil, false, err
		}
	}

	if d, ok := p.Source.(*Discoverer); ok {
		if d.Visit == nil {
			d.Visit = p.visitPage
		}
		if d.Progress == nil {
			d.Progress = p.Progress
		}
	}

	records, err := p.Source.Discover(ctx, p.Scope)
	if err != nil {
		return nil, false, err
	}

	if err := p.Store.SaveURLSet(ctx, key, records); err != nil {
		return nil, false, err
	}
	return records, false, nil
}

// visitPage extracts and caches a page rendered during discovery.
// Extraction failures are ignored here; the fetch phase retries and
// reports them.
func (p *Pipeline) visitPage(ctx context.Context, pageURL, html string) {
	if !p.Scope.Allows(pageURL) {
		return
	}
	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		return
	}
	entry := &llmtext.CacheEntry{
		URL:       pageURL,
		Title:     extracted.Title,
		Text:      extracted.Text,
		FetchedAt: time.Now(),
	}
	if err := p.Store.SavePage(ctx, entry); err != nil {
		p.logger().Warn("page cache write failed", "url", pageURL, "error", err)
		return
	}
	p.visited[pageURL] = true
}

// processPage returns the page content for a URL, from the cache when
// possible, otherwise by rendering and extracting it. Freshly fetched
// pages are cached before returning.
func (p *Pipeline) processPage(ctx context.Context, rec llmtext.URLRecord) (llmtext.Page, bool, error) {
	if !p.NoCache {
		entry, err := p.Store.LoadPage(ctx, rec.URL)
		if err == nil {
			return p.pageFromEntry(entry, rec.Ordinal), true, nil
		}
		if llmtext.ErrorCode(err) != llmtext.ENOTFOUND {
			p.logger().Warn("page cache read failed, refetching", "url", rec.URL, "error", err)
		}
	}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, hostOf(rec.URL)); err != nil {
			return llmtext.Page{}, false, err
		}
	}

	html, err := RenderWithRetryDelays(ctx, rec.URL, p.Renderer.Render, p.Logger, p.RetryDelays)
	if err != nil {
		return llmtext.Page{}, false, err
	}

	extracted, err := p.Extractor.Extract(html)
	if err != nil {
		return llmtext.Page{}, false, err
	}

	entry := &llmtext.CacheEntry{
		URL:       rec.URL,
		Title:     extracted.Title,
		Text:      extracted.Text,
		FetchedAt: time.Now(),
	}
	if err := p.Store.SavePage(ctx, entry); err != nil {
		p.logger().Warn("page cache write failed", "url", rec.URL, "error", err)
	}

	return p.pageFromEntry(entry, rec.Ordinal), false, nil
}

func (p *Pipeline) pageFromEntry(entry *llmtext.CacheEntry, ordinal int) llmtext.Page {
	title := entry.Title
	if title == "" {
		title = llmtext.TitleFromURL(entry.URL)
	}
	return llmtext.Page{
		URL:     entry.URL,
		Title:   title,
		Text:    entry.Text,
		Ordinal: ordinal,
	}
}

// formatPages rewrites page text through the formatter, falling back to the
// raw extracted text when the formatter is absent or fails. Returns an
// error only when the context is canceled.
func (p *Pipeline) formatPages(ctx context.Context, pages []llmtext.Page, result *Result) error {
	if p.Formatter == nil {
		result.Unformatted = len(pages)
		return nil
	}

	p.emit(ProgressEvent{Stage: StageFormat, Type: ProgressStarted, Total: len(pages)})
	for i := range pages {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		formatted, err := p.Formatter.Format(ctx, pages[i].Text, pages[i].URL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Unformatted++
			p.logger().Warn("formatting failed, using raw text", "url", pages[i].URL, "error", err)
			p.emit(ProgressEvent{Stage: StageFormat, Type: ProgressDegraded, Completed: i + 1, Total: len(pages), URL: pages[i].URL, Error: err})
			continue
		}
		pages[i].Text = formatted
	}
	p.emit(ProgressEvent{Stage: StageFormat, Type: ProgressFinished, Total: len(pages)})
	return nil
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.Progress != nil {
		p.Progress(event)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
