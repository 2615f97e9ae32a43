package llmtext

import "context"

// ArtifactWriter persists a rendered artifact. Implementations must be
// atomic: a partially-written artifact is never observable at the
// destination path.
type ArtifactWriter interface {
	// Write renders the artifact and writes it to its destination.
	// Returns the path written.
	Write(ctx context.Context, artifact *Artifact) (path string, err error)
}
