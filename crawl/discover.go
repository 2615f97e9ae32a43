package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Frontier configuration and crawl safety limits.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01

	// DefaultMaxPages limits the number of URLs visited to prevent runaway crawls.
	DefaultMaxPages = 1000
)

var _ llmtext.URLSource = (*Discoverer)(nil)

// Discoverer finds in-scope pages by breadth-first link discovery. It
// renders the seed page, queues every in-scope link, and repeats until the
// frontier is empty. Result ordinals follow visit order, so the set is
// deterministic for an unchanged site. The seed is always visited even when
// it falls outside the filter path; only in-scope URLs enter the result.
type Discoverer struct {
	Renderer llmtext.Renderer
	Links    llmtext.LinkExtractor
	Limiter  llmtext.DomainLimiter
	Logger   *slog.Logger

	// MaxPages bounds the number of visited URLs. DefaultMaxPages when zero.
	MaxPages int

	// RetryDelays overrides the render retry backoff. DefaultRetryDelays when nil.
	RetryDelays []time.Duration

	// Progress receives per-page discovery events.
	Progress ProgressFunc

	// Visit, when set, receives each successfully rendered page. The
	// pipeline uses it to extract and cache pages as they are discovered,
	// so the fetch phase does not render them a second time.
	Visit func(ctx context.Context, url, html string)
}

// Discover implements llmtext.URLSource.
// Pages that fail to render are kept in the result (they were discovered
// through an in-scope link); only their outgoing links are lost.
func (d *Discoverer) Discover(ctx context.Context, scope llmtext.Scope) ([]llmtext.URLRecord, error) {
	if d.Renderer == nil || d.Links == nil {
		return nil, llmtext.Errorf(llmtext.EINVALID, "discoverer requires a renderer and a link extractor")
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	seed, err := llmtext.NormalizeURL(scope.BaseURL)
	if err != nil {
		return nil, err
	}

	maxPages := d.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seed)

	d.emit(ProgressEvent{Stage: StageDiscover, Type: ProgressStarted, URL: seed})

	var visited []string
	for {
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		if len(visited) >= maxPages {
			d.logger().Warn("page limit reached, stopping discovery", "limit", maxPages)
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if scope.Allows(pageURL) {
			visited = append(visited, pageURL)
		}

		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx, hostOf(pageURL)); err != nil {
				return nil, err
			}
		}

		html, err := RenderWithRetryDelays(ctx, pageURL, d.Renderer.Render, d.Logger, d.RetryDelays)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.logger().Warn("render failed during discovery", "url", pageURL, "error", err)
			d.emit(ProgressEvent{Stage: StageDiscover, Type: ProgressFailed, Completed: len(visited), URL: pageURL, Error: err})
			continue
		}

		if d.Visit != nil {
			d.Visit(ctx, pageURL, html)
		}

		links, err := d.Links.ExtractLinks(html, pageURL)
		if err != nil {
			d.logger().Warn("link extraction failed", "url", pageURL, "error", err)
			continue
		}
		for _, link := range links {
			if !scope.Allows(link) {
				continue
			}
			frontier.Push(link)
		}

		d.emit(ProgressEvent{Stage: StageDiscover, Type: ProgressFetched, Completed: len(visited), URL: pageURL})
	}

	if len(visited) == 0 {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no pages discovered in scope from %s", seed)
	}

	d.logger().Debug("discovery finished", "pages", len(visited), "urls_seen", frontier.SeenCount())

	records := make([]llmtext.URLRecord, len(visited))
	for i, u := range visited {
		records[i] = llmtext.URLRecord{URL: u, Ordinal: i}
	}

	d.emit(ProgressEvent{Stage: StageDiscover, Type: ProgressFinished, Completed: len(records), Total: len(records)})

	return records, nil
}

func (d *Discoverer) emit(event ProgressEvent) {
	if d.Progress != nil {
		d.Progress(event)
	}
}

func (d *Discoverer) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// hostOf returns the host portion of a URL for rate limiting.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
