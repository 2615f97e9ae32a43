package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	llmtext "github.com/ivo-toby/llm-text-scraper"
	"github.com/ivo-toby/llm-text-scraper/fs"
	"github.com/ivo-toby/llm-text-scraper/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when --source is "-".
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Source         string   `required:"" help:"URL list file, one URL per line. Use - for stdin."`
	BaseURL        string   `name:"base-url" required:"" help:"Base URL anchoring the scope the set is saved under."`
	FilterPath     string   `name:"filter-path" help:"Scope filter path. Must match the scrape that will use the set."`
	CustomSelector []string `name:"custom-selector" help:"Scope selectors. Must match the scrape that will use the set."`
	CacheDir       string   `name:"cache-dir" default:"tmp" help:"Directory for the URL-set cache."`
	Cache          string   `enum:"fs,sqlite" default:"fs" help:"Cache backend (fs or sqlite)."`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("urlseed"),
		kong.Description("Seed the URL-set cache from a newline-delimited URL list"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	scope := llmtext.Scope{
		BaseURL:    cli.BaseURL,
		FilterPath: cli.FilterPath,
		Selectors:  cli.CustomSelector,
	}
	if err := scope.Validate(); err != nil {
		return fmt.Errorf("invalid scope: %s", llmtext.ErrorMessage(err))
	}

	var store llmtext.CacheStore
	switch cli.Cache {
	case "sqlite":
		if err := os.MkdirAll(cli.CacheDir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
		db := sqlite.NewDB(filepath.Join(cli.CacheDir, "cache.db"))
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open cache database: %w", err)
		}
		defer db.Close()
		store = sqlite.NewStore(db)
	default:
		store = fs.NewStore(cli.CacheDir)
	}

	var source io.Reader
	if cli.Source == "-" {
		source = m.Stdin
	} else {
		f, err := os.Open(cli.Source)
		if err != nil {
			return fmt.Errorf("failed to open URL list: %w", err)
		}
		defer f.Close()
		source = f
	}

	records, dropped, err := readURLList(source, scope)
	if err != nil {
		return err
	}
	for _, u := range dropped {
		fmt.Fprintf(stderr, "skip (out of scope): %s\n", u)
	}
	if len(records) == 0 {
		return llmtext.Errorf(llmtext.EINVALID, "no in-scope URLs in %s", cli.Source)
	}

	if err := store.SaveURLSet(ctx, scope.Key(), records); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Seeded %d URLs for scope %s\n", len(records), scope.Key())
	return nil
}

// readURLList parses a newline-delimited URL list. Blank lines and #
// comments are skipped. URLs are reduced to their normalized identity and
// deduplicated; out-of-scope entries are dropped and returned separately.
// Ordinals follow file order over the kept records.
func readURLList(r io.Reader, scope llmtext.Scope) ([]llmtext.URLRecord, []string, error) {
	var records []llmtext.URLRecord
	var dropped []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		normalized, err := llmtext.NormalizeURL(raw)
		if err != nil {
			return nil, nil, llmtext.Errorf(llmtext.EINVALID, "invalid URL on line %d: %s", line, raw)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		if !scope.Allows(normalized) {
			dropped = append(dropped, normalized)
			continue
		}
		records = append(records, llmtext.URLRecord{URL: normalized, Ordinal: len(records)})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, llmtext.Errorf(llmtext.EINTERNAL, "failed to read URL list: %v", err)
	}

	return records, dropped, nil
}
