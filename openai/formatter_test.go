package openai_test

import (
	"context"
	"testing"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Formatter implements llmtext.Formatter at compile time.
var _ llmtext.Formatter = (*openai.Formatter)(nil)

func TestFormatter_Format_EmptyInputSkipsAPICall(t *testing.T) {
	t.Parallel()

	f := openai.NewFormatter("", "")

	out, err := f.Format(context.Background(), "   ", "https://example.com/docs")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBuildPrompt_ContainsPageText(t *testing.T) {
	t.Parallel()

	prompt := openai.BuildPrompt("Install the package first.", "https://example.com/docs/install")

	assert.Contains(t, prompt, "Install the package first.")
	assert.Contains(t, prompt, "Raw documentation:")
}

func TestBuildPrompt_ContainsSourceURL(t *testing.T) {
	t.Parallel()

	prompt := openai.BuildPrompt("text", "https://example.com/docs/install")

	assert.Contains(t, prompt, "Source: https://example.com/docs/install")
}

func TestBuildPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt := openai.BuildPrompt("text", "https://example.com/docs")

	assert.NotContains(t, prompt, "You are optimizing")
}

func TestDefaultModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gpt-4o-mini", openai.DefaultModel)
}
