package slog

import (
	"context"
	"log/slog"
	"time"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Ensure LoggingFormatter implements llmtext.Formatter.
var _ llmtext.Formatter = (*LoggingFormatter)(nil)

// LoggingFormatter wraps a Formatter with operational logging.
type LoggingFormatter struct {
	next   llmtext.Formatter
	logger *slog.Logger
}

// NewLoggingFormatter creates a new LoggingFormatter.
func NewLoggingFormatter(next llmtext.Formatter, logger *slog.Logger) *LoggingFormatter {
	return &LoggingFormatter{next: next, logger: logger}
}

// Format delegates to the wrapped formatter and logs the operation.
func (f *LoggingFormatter) Format(ctx context.Context, text, pageURL string) (formatted string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("format",
			"url", pageURL,
			"in_bytes", len(text),
			"out_bytes", len(formatted),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Format(ctx, text, pageURL)
}
