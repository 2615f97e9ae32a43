package main

import (
	"fmt"
	"io"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/crawl"
)

// ScrapeCmd runs one scrape end to end: discovery, fetch, optional
// formatting, aggregation.
type ScrapeCmd struct {
	Scope   llmtext.Scope
	NoCache bool

	// RetryDelays overrides the render retry backoff. Mainly for tests.
	RetryDelays []time.Duration
}

// Run executes the scrape, rendering progress to stdout and a summary at
// completion. Per-page failures are reported but do not fail the run.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	pipeline := &crawl.Pipeline{
		Scope:        c.Scope,
		Source:       deps.Source,
		Store:        deps.Store,
		Renderer:     deps.Renderer,
		Extractor:    deps.Extractor,
		Formatter:    deps.Formatter,
		Writer:       deps.Writer,
		TokenCounter: deps.TokenCounter,
		Limiter:      deps.Limiter,
		Logger:       deps.Logger,
		NoCache:      c.NoCache,
		RetryDelays:  c.RetryDelays,
		Progress:     renderProgress(deps.Stdout, deps.Stderr),
	}

	result, err := pipeline.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmtext.ErrorMessage(err))
		return err
	}

	printSummary(deps.Stdout, deps.FormatterDesc, result)
	return nil
}

// renderProgress returns a progress callback that draws per-URL progress
// lines on stdout and reports skipped pages on stderr.
func renderProgress(stdout, stderr io.Writer) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Stage {
		case crawl.StageDiscover:
			switch e.Type {
			case crawl.ProgressStarted:
				fmt.Fprintf(stdout, "Discovering pages from %s\n", e.URL)
			case crawl.ProgressFetched:
				fmt.Fprintf(stdout, "\r[%d discovered] %s", e.Completed, crawl.TruncateURL(e.URL, 60))
			case crawl.ProgressFailed:
				fmt.Fprintf(stderr, "skip %s: %s\n", e.URL, llmtext.ErrorMessage(e.Error))
			case crawl.ProgressFinished:
				fmt.Fprintf(stdout, "\r%80s\r", "")
			}
		case crawl.StageFetch:
			if e.Type == crawl.ProgressFailed {
				fmt.Fprintf(stderr, "skip %s: %s\n", e.URL, llmtext.ErrorMessage(e.Error))
				return
			}
			fmt.Fprintf(stdout, "\r[%d/%d] %s", e.Completed, e.Total, crawl.TruncateURL(e.URL, 60))
		case crawl.StageFormat:
			if e.Type == crawl.ProgressStarted {
				fmt.Fprintf(stdout, "\r%80s\rFormatting %d pages\n", "", e.Total)
			}
		case crawl.StageWrite:
			if e.Type == crawl.ProgressStarted {
				fmt.Fprintf(stdout, "\r%80s\r", "")
			}
		}
	}
}

func printSummary(w io.Writer, formatterDesc string, result *crawl.Result) {
	note := ""
	if result.URLSetFromCache {
		note = " (cached URL set)"
	}
	fmt.Fprintf(w, "Discovered %d pages%s\n", result.Discovered, note)
	fmt.Fprintf(w, "Pages: %d from cache, %d fetched, %d skipped\n", result.FromCache, result.Fetched, result.Skipped)

	switch {
	case formatterDesc == "" || formatterDesc == "none":
		fmt.Fprintln(w, "Formatter: none (raw text)")
	case result.Unformatted > 0:
		fmt.Fprintf(w, "Formatter: %s (%d pages kept raw text)\n", formatterDesc, result.Unformatted)
	default:
		fmt.Fprintf(w, "Formatter: %s\n", formatterDesc)
	}

	if result.Tokens > 0 {
		fmt.Fprintf(w, "Wrote %s (%s, %s)\n", result.OutputPath, crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	} else {
		fmt.Fprintf(w, "Wrote %s (%s)\n", result.OutputPath, crawl.FormatBytes(result.Bytes))
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(w, "Skipped pages:")
		for _, f := range result.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.URL, llmtext.ErrorMessage(f.Err))
		}
	}
}
