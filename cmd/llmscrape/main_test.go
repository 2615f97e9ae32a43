package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	main "github.com/ivo-toby/llm-text-scraper/cmd/llmscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "llmscrape")
	assert.Contains(t, stdout.String(), "--base-url")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_BaseURLRequired(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--static"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--base-url", "ftp://example.com/docs", "--static"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scope")
	assert.Contains(t, stderr.String(), "Hint:")
}

func TestMain_Run_RejectsFilterPathWithoutSlash(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--base-url", "https://example.com", "--filter-path", "docs", "--static"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scope")
}

func TestMain_Run_RejectsUnknownCacheBackend(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--base-url", "https://example.com", "--cache", "redis"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsUnknownFormatter(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--base-url", "https://example.com", "--formatter", "llama"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsUnknownConfigKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bogus: true\n"), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--config", path, "--base-url", "https://example.com", "--static"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

// docSite serves a small documentation site and counts requests. The root
// page links to two guide pages and one blog page.
func docSite(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	pages := map[string]string{
		"/": `<html><head><title>Docs Home</title></head><body>
			<nav><a href="/guide/install">Install</a> <a href="/guide/api">API</a> <a href="/blog/announcement">Blog</a></nav>
			<main><p>Welcome to the documentation portal. Everything you need to install, configure, and operate the tool lives here.</p></main>
			</body></html>`,
		"/guide/install": `<html><head><title>Install</title></head><body>
			<nav><a href="/">Home</a> <a href="/guide/api">API</a></nav>
			<main><h1>Installation</h1><p>Run the installer script and follow the prompts to finish setting up the tool on your machine.</p></main>
			</body></html>`,
		"/guide/api": `<html><head><title>API</title></head><body>
			<nav><a href="/">Home</a> <a href="/guide/install">Install</a></nav>
			<main><h1>API Reference</h1><p>Every endpoint accepts JSON and returns JSON. Authenticate with a bearer token header on each request.</p></main>
			</body></html>`,
		"/blog/announcement": `<html><head><title>Blog</title></head><body>
			<main><h1>Big Announcement</h1><p>We shipped a new release with many improvements across the board.</p></main>
			</body></html>`,
	}

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func TestMain_Run_ScrapesStaticSite(t *testing.T) {
	t.Parallel()

	srv, requests := docSite(t)
	cacheDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "llms-full.txt")

	args := []string{
		"--base-url", srv.URL,
		"--filter-path", "/guide",
		"--static",
		"--formatter", "none",
		"--delay", "0s",
		"--cache-dir", cacheDir,
		"-o", outPath,
	}

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(data)

	// Header names the site and the scoped region.
	assert.True(t, strings.HasPrefix(content, "# Documentation from "+srv.URL+"\n"), "artifact should start with the site header")
	assert.Contains(t, content, "> Extracted content from /guide")
	assert.Contains(t, content, strings.Repeat("-", 40))

	// Both guide pages are present, in discovery order.
	installAt := strings.Index(content, "Installation")
	apiAt := strings.Index(content, "API Reference")
	require.GreaterOrEqual(t, installAt, 0)
	require.GreaterOrEqual(t, apiAt, 0)
	assert.Less(t, installAt, apiAt)
	assert.Contains(t, content, "Run the installer script")
	assert.Contains(t, content, "bearer token header")

	// Out-of-scope pages stay out.
	assert.NotContains(t, content, "Big Announcement")
	assert.NotContains(t, content, "Welcome to the documentation portal")

	assert.False(t, strings.HasSuffix(content, "\n"), "artifact should have no trailing newline")

	output := stdout.String()
	assert.Contains(t, output, "Discovered 2 pages")
	assert.Contains(t, output, "Pages: 0 from cache, 2 fetched, 0 skipped")
	assert.Contains(t, output, "Wrote "+outPath)

	// A second run against a warm cache rebuilds the artifact without a
	// single HTTP request.
	before := requests.Load()
	var stdout2, stderr2 bytes.Buffer
	err = main.NewMain().Run(context.Background(), args, &stdout2, &stderr2)
	require.NoError(t, err)

	assert.Equal(t, before, requests.Load(), "warm run should not hit the site")
	assert.Contains(t, stdout2.String(), "(cached URL set)")
	assert.Contains(t, stdout2.String(), "2 from cache, 0 fetched")

	data2, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, content, string(data2), "warm run should reproduce the artifact")
}

func TestMain_Run_NoCacheForcesRefetch(t *testing.T) {
	t.Parallel()

	srv, requests := docSite(t)
	cacheDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "llms-full.txt")

	args := []string{
		"--base-url", srv.URL,
		"--filter-path", "/guide",
		"--static",
		"--formatter", "none",
		"--delay", "0s",
		"--cache-dir", cacheDir,
		"-o", outPath,
	}

	var out1, err1 bytes.Buffer
	require.NoError(t, main.NewMain().Run(context.Background(), args, &out1, &err1))
	before := requests.Load()

	var out2, err2 bytes.Buffer
	require.NoError(t, main.NewMain().Run(context.Background(), append(args, "--no-cache"), &out2, &err2))

	assert.Greater(t, requests.Load(), before, "no-cache run should hit the site again")
	assert.NotContains(t, out2.String(), "(cached URL set)")
}

func TestMain_Run_SqliteCache(t *testing.T) {
	t.Parallel()

	srv, requests := docSite(t)
	cacheDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "llms-full.txt")

	args := []string{
		"--base-url", srv.URL,
		"--filter-path", "/guide",
		"--static",
		"--formatter", "none",
		"--delay", "0s",
		"--cache", "sqlite",
		"--cache-dir", cacheDir,
		"-o", outPath,
	}

	var out1, err1 bytes.Buffer
	require.NoError(t, main.NewMain().Run(context.Background(), args, &out1, &err1))

	_, err := os.Stat(filepath.Join(cacheDir, "cache.db"))
	require.NoError(t, err, "sqlite cache file should exist")

	before := requests.Load()
	var out2, err2 bytes.Buffer
	require.NoError(t, main.NewMain().Run(context.Background(), args, &out2, &err2))

	assert.Equal(t, before, requests.Load(), "warm run should not hit the site")
	assert.Contains(t, out2.String(), "(cached URL set)")
}

func TestMain_Run_SitemapDiscovery(t *testing.T) {
	t.Parallel()

	var srvURL string
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
				<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
				<url><loc>%[1]s/guide/api</loc></url>
				<url><loc>%[1]s/guide/install</loc></url>
				<url><loc>%[1]s/blog/announcement</loc></url>
				</urlset>`, srvURL)
		case "/guide/api":
			fmt.Fprint(w, `<html><body><main><h1>API Reference</h1><p>Every endpoint accepts JSON and returns JSON. Authenticate with a bearer token.</p></main></body></html>`)
		case "/guide/install":
			fmt.Fprint(w, `<html><body><main><h1>Installation</h1><p>Run the installer script and follow the prompts to finish setting up the tool.</p></main></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	outPath := filepath.Join(t.TempDir(), "llms-full.txt")
	args := []string{
		"--base-url", srv.URL,
		"--filter-path", "/guide",
		"--sitemap",
		"--static",
		"--formatter", "none",
		"--delay", "0s",
		"--cache-dir", t.TempDir(),
		"-o", outPath,
	}

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(data)

	// Pages follow sitemap order, scope filtering still applies.
	apiAt := strings.Index(content, "API Reference")
	installAt := strings.Index(content, "Installation")
	require.GreaterOrEqual(t, apiAt, 0)
	require.GreaterOrEqual(t, installAt, 0)
	assert.Less(t, apiAt, installAt)
	assert.NotContains(t, content, "/blog/announcement")

	assert.Contains(t, stdout.String(), "Discovered 2 pages")
}

func TestMain_Run_MarkdownOutput(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><head><title>Home</title></head><body>
				<nav><a href="/install">Install</a></nav>
				<main><h1>Documentation Portal</h1><p>Everything you need to install, configure, and operate the tool with <strong>verified</strong> builds.</p></main>
				</body></html>`)
		case "/install":
			fmt.Fprint(w, `<html><head><title>Install</title></head><body>
				<main><h1>Installation</h1><p>Run the installer and follow the prompts to finish setting up.</p><pre><code>npm install the-tool</code></pre></main>
				</body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	outPath := filepath.Join(t.TempDir(), "llms-full.txt")
	args := []string{
		"--base-url", srv.URL,
		"--static",
		"--markdown",
		"--formatter", "none",
		"--delay", "0s",
		"--cache-dir", t.TempDir(),
		"-o", outPath,
	}

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "> Extracted content from /")
	assert.Contains(t, content, "# Installation")
	assert.Contains(t, content, "**verified**")
	assert.Contains(t, content, "npm install the-tool")
}

func TestMain_Run_CustomSelector(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Page</title></head><body>
			<main><p>Promotional banner text that the selector should leave out of the artifact entirely.</p></main>
			<div class="reference"><p>The command accepts a single positional argument naming the target environment to deploy into.</p></div>
			</body></html>`)
	}))
	t.Cleanup(srv.Close)

	outPath := filepath.Join(t.TempDir(), "llms-full.txt")
	args := []string{
		"--base-url", srv.URL,
		"--custom-selector", "div.reference",
		"--static",
		"--formatter", "none",
		"--delay", "0s",
		"--cache-dir", t.TempDir(),
		"-o", outPath,
	}

	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), args, &stdout, &stderr)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "naming the target environment")
	assert.NotContains(t, content, "Promotional banner text")
}

func TestMain_Run_ConfigFileSuppliesFlags(t *testing.T) {
	t.Parallel()

	srv, _ := docSite(t)

	ignoredPath := filepath.Join(t.TempDir(), "ignored.txt")
	outPath := filepath.Join(t.TempDir(), "llms-full.txt")

	cfg := fmt.Sprintf(`base-url: %s
filter-path: /guide
static: true
formatter: none
delay: 0s
cache-dir: %s
output: %s
`, srv.URL, t.TempDir(), ignoredPath)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	// The config file satisfies --base-url; the explicit -o flag wins over
	// the file's output path.
	var stdout, stderr bytes.Buffer
	err := main.NewMain().Run(context.Background(), []string{"--config", cfgPath, "-o", outPath}, &stdout, &stderr)
	require.NoError(t, err)

	_, err = os.Stat(outPath)
	require.NoError(t, err, "artifact should be written to the flag's path")
	_, err = os.Stat(ignoredPath)
	assert.True(t, os.IsNotExist(err), "config file's output path should be overridden")

	assert.Contains(t, stdout.String(), "Discovered 2 pages")
}
