// Package fs provides file-based cache storage and atomic artifact writes.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// DefaultCacheDir is where cache files live unless configured otherwise.
const DefaultCacheDir = "tmp"

// Ensure Store implements llmtext.CacheStore at compile time.
var _ llmtext.CacheStore = (*Store)(nil)

// Store implements llmtext.CacheStore with one file per entry in a flat
// directory. URL sets are stored as urls-<scopeKey>.json, pages as
// <hash>.json keyed by a hash of the URL. All writes are atomic via a
// same-directory temp file and rename.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on
// first write.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultCacheDir
	}
	return &Store{dir: dir}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) urlSetPath(scopeKey string) string {
	return filepath.Join(s.dir, "urls-"+scopeKey+".json")
}

func (s *Store) pagePath(url string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%x.json", xxhash.Sum64String(url)))
}

// pageFile is the on-disk page entry. FetchedAt is not stored; it is
// recovered from the file mtime on load.
type pageFile struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

func (s *Store) LoadURLSet(_ context.Context, scopeKey string) ([]llmtext.URLRecord, error) {
	data, err := os.ReadFile(s.urlSetPath(scopeKey))
	if os.IsNotExist(err) {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no cached url set for scope %s", scopeKey)
	}
	if err != nil {
		return nil, err
	}

	var records []llmtext.URLRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, llmtext.Errorf(llmtext.EINTERNAL, "decode cached url set: %v", err)
	}
	return records, nil
}

func (s *Store) SaveURLSet(_ context.Context, scopeKey string, urls []llmtext.URLRecord) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return llmtext.Errorf(llmtext.EINTERNAL, "encode url set: %v", err)
	}
	return writeFileAtomic(s.urlSetPath(scopeKey), data, 0644)
}

func (s *Store) LoadPage(_ context.Context, url string) (*llmtext.CacheEntry, error) {
	path := s.pagePath(url)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "page not cached: %s", url)
	}
	if err != nil {
		return nil, err
	}

	var pf pageFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, llmtext.Errorf(llmtext.EINTERNAL, "decode cached page %s: %v", url, err)
	}

	entry := &llmtext.CacheEntry{
		URL:   pf.URL,
		Title: pf.Title,
		Text:  pf.Text,
	}
	if info, err := os.Stat(path); err == nil {
		entry.FetchedAt = info.ModTime()
	}
	return entry, nil
}

func (s *Store) SavePage(_ context.Context, entry *llmtext.CacheEntry) error {
	if entry == nil || entry.URL == "" {
		return llmtext.Errorf(llmtext.EINVALID, "cache entry requires a url")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(pageFile{URL: entry.URL, Title: entry.Title, Text: entry.Text}, "", "  ")
	if err != nil {
		return llmtext.Errorf(llmtext.EINTERNAL, "encode page %s: %v", entry.URL, err)
	}
	return writeFileAtomic(s.pagePath(entry.URL), data, 0644)
}

// writeFileAtomic writes data to path through a temp file in the same
// directory, so a crash mid-write never leaves a partial file at path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
