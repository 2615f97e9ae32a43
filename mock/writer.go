package mock

import (
	"context"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

var _ llmtext.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a test double for llmtext.ArtifactWriter.
type ArtifactWriter struct {
	WriteFn func(ctx context.Context, artifact *llmtext.Artifact) (string, error)
}

func (w *ArtifactWriter) Write(ctx context.Context, artifact *llmtext.Artifact) (string, error) {
	return w.WriteFn(ctx, artifact)
}
