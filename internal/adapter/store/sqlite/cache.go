// Package sqlite persists HTTP responses for the GitHub read path in a
// local SQLite database, so conditional requests survive across runs.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gregjones/httpcache"
	_ "github.com/mattn/go-sqlite3"
)

// Cache implements httpcache.Cache on a SQLite database.
//
// The httpcache.Cache interface has no error returns, so failures here
// degrade to cache misses and are logged at debug level. A broken
// cache slows the tool down; it never breaks it.
type Cache struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ httpcache.Cache = (*Cache)(nil)

// NewCache opens (or creates) the cache database at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewCache(dbPath string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Readers and the occasional concurrent writer should not trip
	// over each other's locks.
	if _, err := db.Exec("PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure cache database: %w", err)
	}

	c := &Cache{db: db, logger: logger}

	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return c, nil
}

// createSchema creates the response table and index if they don't exist.
func (c *Cache) createSchema() error {
	schema := `
	-- Serialized HTTP responses keyed by request URL
	CREATE TABLE IF NOT EXISTS http_responses (
		cache_key TEXT PRIMARY KEY,
		response BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_http_responses_updated ON http_responses(updated_at);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Get returns the cached response for key, if any.
func (c *Cache) Get(key string) ([]byte, bool) {
	query := `SELECT response FROM http_responses WHERE cache_key = ?`

	var response []byte
	err := c.db.QueryRow(query, key).Scan(&response)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Debug("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	return response, true
}

// Set stores the response for key, replacing any previous entry.
func (c *Cache) Set(key string, response []byte) {
	query := `
		INSERT INTO http_responses (cache_key, response, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			response = excluded.response,
			updated_at = excluded.updated_at
	`

	if _, err := c.db.Exec(query, key, response, time.Now().Unix()); err != nil {
		c.logger.Debug("cache write failed", "key", key, "error", err)
	}
}

// Delete removes the entry for key.
func (c *Cache) Delete(key string) {
	query := `DELETE FROM http_responses WHERE cache_key = ?`

	if _, err := c.db.Exec(query, key); err != nil {
		c.logger.Debug("cache delete failed", "key", key, "error", err)
	}
}

// Prune drops entries not touched within maxAge and reports how many
// rows were removed.
func (c *Cache) Prune(maxAge time.Duration) (int64, error) {
	query := `DELETE FROM http_responses WHERE updated_at < ?`

	result, err := c.db.Exec(query, time.Now().Add(-maxAge).Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
