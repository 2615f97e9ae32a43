package htmltomarkdown_test

import (
	"testing"

	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements llmtext.Converter at compile time.
var _ llmtext.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "headings",
			html: `<h1>Configuration</h1><h2>File locations</h2><p>Settings load from the working directory.</p>`,
			want: []string{"# Configuration", "## File locations", "Settings load from the working directory."},
		},
		{
			name: "links",
			html: `<p>See the <a href="https://example.com/docs/api">API reference</a> for details.</p>`,
			want: []string{"[API reference](https://example.com/docs/api)"},
		},
		{
			name: "unordered list",
			html: `<ul><li>watch mode</li><li>batch mode</li></ul>`,
			want: []string{"- watch mode", "- batch mode"},
		},
		{
			name: "ordered list",
			html: `<ol><li>Download the binary</li><li>Add it to PATH</li></ol>`,
			want: []string{"1. Download the binary", "2. Add it to PATH"},
		},
		{
			name: "inline code",
			html: `<p>Pass <code>--dry-run</code> to preview changes.</p>`,
			want: []string{"`--dry-run`"},
		},
		{
			name: "fenced code block with language",
			html: `<pre><code class="language-yaml">endpoint: https://logs.example.com
batch_size: 100
</code></pre>`,
			want: []string{"```yaml", "batch_size: 100"},
		},
		{
			name: "fenced code block without language",
			html: `<pre><code>beacon --version</code></pre>`,
			want: []string{"```", "beacon --version"},
		},
		{
			name: "table",
			html: `<table>
<thead><tr><th>Flag</th><th>Default</th></tr></thead>
<tbody><tr><td>--interval</td><td>5s</td></tr></tbody>
</table>`,
			want: []string{"Flag", "--interval", "|", "---"},
		},
		{
			name: "emphasis",
			html: `<p><strong>Required.</strong> The endpoint is <em>not</em> optional.</p>`,
			want: []string{"**Required.**", "*not*"},
		},
		{
			name: "blockquote",
			html: `<blockquote><p>Upgrade before the old API shuts down.</p></blockquote>`,
			want: []string{"> Upgrade before the old API shuts down."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := htmltomarkdown.NewConverter()
			md, err := conv.Convert(tt.html)

			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, md, want)
			}
		})
	}

	t.Run("returns invalid for blank input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, llmtext.EINVALID, llmtext.ErrorCode(err))
	})

	t.Run("converts a whole extracted page region", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h1>Quickstart</h1>
<p>Get a watcher running in two minutes.</p>
<h2>Install</h2>
<pre><code class="language-bash">curl -L https://example.com/beacon | sh</code></pre>
<h2>Run</h2>
<p>Start it with <code>beacon watch /var/log</code> and tail the output.</p>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Quickstart")
		assert.Contains(t, md, "## Install")
		assert.Contains(t, md, "```bash")
		assert.Contains(t, md, "`beacon watch /var/log`")
	})
}
