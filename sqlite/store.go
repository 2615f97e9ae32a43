package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	llmtext "github.com/ivo-toby/llm-text-scraper"
)

// Compile-time interface verification.
var _ llmtext.CacheStore = (*Store)(nil)

// Store implements llmtext.CacheStore using SQLite.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// LoadURLSet returns the URL set for a scope key, ordered by ordinal.
func (s *Store) LoadURLSet(ctx context.Context, scopeKey string) ([]llmtext.URLRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, ordinal
		FROM url_sets
		WHERE scope_key = ?
		ORDER BY ordinal ASC
	`, scopeKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []llmtext.URLRecord
	for rows.Next() {
		var rec llmtext.URLRecord
		if err := rows.Scan(&rec.URL, &rec.Ordinal); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "no cached url set for scope %s", scopeKey)
	}
	return records, nil
}

// SaveURLSet replaces the URL set for a scope key in one transaction.
func (s *Store) SaveURLSet(ctx context.Context, scopeKey string, urls []llmtext.URLRecord) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM url_sets WHERE scope_key = ?", scopeKey); err != nil {
		return err
	}

	for _, rec := range urls {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO url_sets (scope_key, ordinal, url)
			VALUES (?, ?, ?)
		`, scopeKey, rec.Ordinal, rec.URL); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadPage returns the cached entry for a URL.
func (s *Store) LoadPage(ctx context.Context, url string) (*llmtext.CacheEntry, error) {
	var entry llmtext.CacheEntry
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT url, title, content, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&entry.URL, &entry.Title, &entry.Text, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, llmtext.Errorf(llmtext.ENOTFOUND, "page not cached: %s", url)
	}
	if err != nil {
		return nil, err
	}

	entry.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}
	return &entry, nil
}

// SavePage inserts or overwrites the cached entry for a URL.
func (s *Store) SavePage(ctx context.Context, entry *llmtext.CacheEntry) error {
	if entry == nil || entry.URL == "" {
		return llmtext.Errorf(llmtext.EINVALID, "cache entry requires a url")
	}

	fetchedAt := entry.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, title, content, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), entry.URL, entry.Title, entry.Text, fetchedAt.Format(time.RFC3339))

	return err
}
