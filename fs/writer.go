package fs

import (
	"context"
	"os"
	"path/filepath"

	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// DefaultOutputPath is where the artifact is written unless configured
// otherwise.
const DefaultOutputPath = "llms-full.txt"

// Ensure Writer implements llmtext.ArtifactWriter at compile time.
var _ llmtext.ArtifactWriter = (*Writer)(nil)

// Writer renders an artifact to a file. The write is atomic: an existing
// artifact at the destination survives intact if the write fails partway.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting path.
func NewWriter(path string) *Writer {
	if path == "" {
		path = DefaultOutputPath
	}
	return &Writer{path: path}
}

// Write implements llmtext.ArtifactWriter.
func (w *Writer) Write(_ context.Context, artifact *llmtext.Artifact) (string, error) {
	if artifact == nil || len(artifact.Pages) == 0 {
		return "", llmtext.Errorf(llmtext.EINVALID, "artifact has no pages")
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := writeFileAtomic(w.path, []byte(artifact.Render()), 0644); err != nil {
		return "", err
	}
	return w.path, nil
}
