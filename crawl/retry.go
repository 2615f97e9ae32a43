package crawl

import (
	"context"
	"log/slog"
	"time"
)

// RenderFunc is the signature for a render function.
type RenderFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for render retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RenderWithRetry renders a URL, retrying failures with the default backoff
// delays (4 total attempts). Retry attempts are logged at debug level when a
// logger is provided.
func RenderWithRetry(ctx context.Context, url string, render RenderFunc, logger *slog.Logger) (string, error) {
	return RenderWithRetryDelays(ctx, url, render, logger, DefaultRetryDelays())
}

// RenderWithRetryDelays is like RenderWithRetry but with configurable
// delays. One render attempt is made per delay plus the initial one, so
// three delays mean four attempts. Useful for testing without waiting out
// real backoff.
func RenderWithRetryDelays(ctx context.Context, url string, render RenderFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	for attempt := 1; ; attempt++ {
		html, err := render(ctx, url)
		if err == nil {
			return html, nil
		}
		if attempt > len(delays) {
			return "", err
		}

		if logger != nil {
			logger.Debug("retrying render", "url", url, "attempt", attempt+1, "error", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt-1]):
		}
	}
}
