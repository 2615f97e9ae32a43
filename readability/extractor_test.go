package readability_test

import (
	"testing"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/mock"
	"github.com/ivo-toby/llm-text-scraper/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ llmtext.Extractor = (*readability.Extractor)(nil)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, llmtext.EINVALID, llmtext.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Watcher Reference</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Watcher Reference", result.Title)
}

func TestExtractor_DropsBoilerplateAroundTheArticle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Retention</title></head>
<body>
<nav><a href="/home">Top Nav Home</a><a href="/pricing">Top Nav Pricing</a></nav>
<aside class="sidebar"><p>Sidebar table of contents</p></aside>
<article><p>Shipped batches stay on disk until the remote endpoint acknowledges receipt of them.</p></article>
<footer><p>Footer legal notice 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "until the remote endpoint acknowledges receipt")
	assert.NotContains(t, result.Text, "Top Nav Home")
	assert.NotContains(t, result.Text, "Sidebar table of contents")
	assert.NotContains(t, result.Text, "Footer legal notice 2024")
}

func TestExtractor_ReturnsPlainTextWithoutTags(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Modes</title></head>
<body>
<article>
<h1>Operating Modes</h1>
<p>Watch mode follows files as they grow and ships lines continuously.</p>
<h2>Batch Mode Details</h2>
<p>Batch mode reads each file once and exits when everything has shipped.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "Operating Modes")
	assert.Contains(t, result.Text, "Batch Mode Details")
	assert.NotContains(t, result.Text, "<h2")
	assert.NotContains(t, result.Text, "<p")
}

func TestExtractor_PreservesCodeBlockText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Install</title></head>
<body>
<article>
<p>Install the watcher with a single command:</p>
<pre><code>brew install beacon</code></pre>
<p>The binary lands in your usual bin directory.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "brew install beacon")
}

func TestExtractor_PreservesCodeBlocksWithNestedSpans(t *testing.T) {
	t.Parallel()

	// Syntax highlighters wrap code in span elements for coloring
	html := `<!DOCTYPE html>
<html>
<head><title>Usage</title></head>
<body>
<article>
<p>Start the watcher like this:</p>
<pre><code><div class="line"><span class="token">beacon</span> <span class="token">watch</span></div></code></pre>
<p>It keeps running until interrupted.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.Text, "beacon")
	assert.Contains(t, result.Text, "watch")
}

func TestExtractor_WithMarkdownConvertsContentHTML(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Install</title></head>
<body>
<article>
<h2>Install</h2>
<p>Download the release archive and unpack it somewhere on your PATH.</p>
</article>
</body>
</html>`

	var gotHTML string
	conv := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			gotHTML = html
			return "## Install\n\nDownload the release archive and unpack it somewhere on your PATH.", nil
		},
	}

	ext := readability.NewExtractor(readability.WithMarkdown(conv))
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, gotHTML, "<p")
	assert.Equal(t, "## Install\n\nDownload the release archive and unpack it somewhere on your PATH.", result.Text)
}

func TestExtractor_WithMarkdownPropagatesConverterError(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Any</title></head>
<body>
<article><p>Watch mode follows files as they grow and ships lines continuously.</p></article>
</body>
</html>`

	conv := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return "", llmtext.Errorf(llmtext.EINTERNAL, "markdown conversion failed")
		},
	}

	ext := readability.NewExtractor(readability.WithMarkdown(conv))
	_, err := ext.Extract(html)

	require.Error(t, err)
	assert.Equal(t, llmtext.EINTERNAL, llmtext.ErrorCode(err))
}
