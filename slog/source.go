package slog

import (
	"context"
	"log/slog"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Ensure LoggingSource implements llmtext.URLSource.
var _ llmtext.URLSource = (*LoggingSource)(nil)

// LoggingSource wraps a URLSource with operational logging.
type LoggingSource struct {
	next   llmtext.URLSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next llmtext.URLSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Discover(ctx context.Context, scope llmtext.Scope) (records []llmtext.URLRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"url", scope.BaseURL,
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, scope)
}
