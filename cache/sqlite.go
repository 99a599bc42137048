package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL,
	evict_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_evict_at ON cache_entries(evict_at);
`

// SQLite is a Store backed by a single SQLite table. Values are stored as JSON,
// so reads return the same shapes encoding/json produces for any.
type SQLite struct {
	db       *sql.DB
	staleFor time.Duration
	now      func() time.Time
}

// OpenSQLite opens (or creates) the database at dsn and prepares the cache table.
func OpenSQLite(ctx context.Context, dsn string, staleFor time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, sqliteSchema)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	if staleFor < 0 {
		staleFor = 0
	}

	return &SQLite{db: db, staleFor: staleFor, now: time.Now}, nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, key string) (Entry, bool) {
	var (
		raw       []byte
		expiresAt int64
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache_entries WHERE key = ? AND evict_at > ?`,
		key, s.now().UnixMilli(),
	).Scan(&raw, &expiresAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
		}

		return Entry{}, false
	}

	var value any

	err = json.Unmarshal(raw, &value)
	if err != nil {
		slog.Warn("cache entry is not valid JSON", slog.String("key", key), slog.Any("error", err))

		return Entry{}, false
	}

	return Entry{Value: value, ExpiresAt: time.UnixMilli(expiresAt)}, true
}

// Put implements Store.
func (s *SQLite) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	now := s.now()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, expires_at, evict_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, evict_at = excluded.evict_at`,
		key, raw, now.Add(ttl).UnixMilli(), now.Add(ttl+s.staleFor).UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %q: %w", key, err)
	}

	return nil
}

// Has implements Store.
func (s *SQLite) Has(ctx context.Context, key string) bool {
	var one int

	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM cache_entries WHERE key = ? AND expires_at > ?`,
		key, s.now().UnixMilli(),
	).Scan(&one)

	return err == nil
}

// Purge deletes entries whose stale window has passed and returns how many were removed.
func (s *SQLite) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE evict_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purging cache entries: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged entries: %w", err)
	}

	return removed, nil
}

// RunPurger calls Purge every interval until ctx is done.
func (s *SQLite) RunPurger(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Purge(ctx)
			if err != nil {
				slog.Warn("cache purge failed", slog.Any("error", err))

				continue
			}

			if removed > 0 {
				slog.Debug("cache purged", slog.Int64("count", removed))
			}
		}
	}
}

// Close closes the database.
func (s *SQLite) Close() error {
	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("closing sqlite: %w", err)
	}

	return nil
}
