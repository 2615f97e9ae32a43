package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ivo-toby/llm-text-scraper/mock"
	llmslog "github.com/ivo-toby/llm-text-scraper/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("logs render with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			RenderFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		renderer := llmslog.NewLoggingRenderer(inner, logger)
		html, err := renderer.Render(context.Background(), "https://example.com/docs")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "render")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Renderer{
			RenderFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("navigation failed")
			},
		}

		renderer := llmslog.NewLoggingRenderer(inner, logger)
		_, err := renderer.Render(context.Background(), "https://example.com/docs")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "navigation failed")
	})

	t.Run("delegates Close to the wrapped renderer", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Renderer{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		renderer := llmslog.NewLoggingRenderer(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		require.NoError(t, renderer.Close())
		assert.True(t, closed)
	})
}
