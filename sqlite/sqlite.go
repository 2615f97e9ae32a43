// Package sqlite provides a SQLite-backed implementation of the crawl cache.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schema defines the two cache tiers: url_sets holds one row per
// discovered URL keyed by the crawl scope, pages holds the extracted
// content per URL and is shared across scopes.
const schema = `
	CREATE TABLE IF NOT EXISTS url_sets (
		scope_key TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		url TEXT NOT NULL,
		PRIMARY KEY (scope_key, ordinal)
	);

	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_url_sets_scope_key ON url_sets(scope_key);
`

// DB wraps a database/sql connection to a single SQLite file.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns an unopened DB for the given path. Use ":memory:" for an
// in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database, applies the connection pragmas, and
// creates the schema if it does not exist yet.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer, so a larger pool only creates
	// lock contention between our own connections.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of returning
	// "database is locked" immediately.
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != ":memory:" {
		// WAL speeds up the write-heavy crawl workload and lets
		// readers proceed during writes. In-memory databases
		// don't support it.
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the underlying connection. Safe to call on an unopened DB.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query expected to return at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}
