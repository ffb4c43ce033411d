// Package store provides the persistent key/value store backing the
// dataset caches, the favorites set, and the viewer settings blob.
// Values live in a single flat namespace of string keys.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rwxlff/RWX-Ship-Viewer/internal/config"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Well-known keys. Each cached dataset owns exactly one key; expiry is
// purely time-based per key, there is no shared invalidation.
const (
	KeyCatalog      = "catalog"
	KeyFiatPrices   = "fiat_prices"
	KeyAUECPrices   = "auec_prices"
	KeyLoanerMatrix = "loaner_matrix"
	KeyFavorites    = "favorites"
	KeySettings     = "settings"
)

// Store is a flat key/value table on SQLite or Postgres.
type Store struct {
	conn   *sql.DB
	driver string
}

// Open creates a store connection based on config.
func Open(cfg *config.Config) (*Store, error) {
	var conn *sql.DB
	var err error

	switch cfg.DBDriver {
	case "sqlite":
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		conn, err = sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1) // SQLite is single-writer
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DATABASE_URL required for postgres driver")
		}
		conn, err = sql.Open("pgx", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		conn.SetMaxOpenConns(10)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{conn: conn, driver: cfg.DBDriver}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("store opened")
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	ts := "INTEGER"
	if s.driver == "postgres" {
		ts = "BIGINT"
	}
	_, err := s.conn.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		timestamp %s NOT NULL
	)`, ts))
	return err
}

// placeholder returns the correct placeholder syntax for the driver.
func (s *Store) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Get returns the raw value and write time for a key. The bool reports
// whether the key exists; no TTL logic is applied here.
func (s *Store) Get(ctx context.Context, key string) (string, time.Time, bool, error) {
	query := fmt.Sprintf("SELECT value, timestamp FROM kv WHERE key = %s", s.placeholder(1))

	var value string
	var millis int64
	err := s.conn.QueryRowContext(ctx, query, key).Scan(&value, &millis)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return value, time.UnixMilli(millis), true, nil
}

// Put stores a value under a key, overwriting any prior entry.
func (s *Store) Put(ctx context.Context, key, value string, at time.Time) error {
	query := fmt.Sprintf(
		"INSERT INTO kv (key, value, timestamp) VALUES (%s, %s, %s) %s",
		s.placeholder(1), s.placeholder(2), s.placeholder(3),
		s.onConflictUpdate("key", "value = excluded.value, timestamp = excluded.timestamp"),
	)
	if _, err := s.conn.ExecContext(ctx, query, key, value, at.UnixMilli()); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM kv WHERE key = %s", s.placeholder(1))
	if _, err := s.conn.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// onConflictUpdate returns the correct upsert syntax for the driver.
func (s *Store) onConflictUpdate(conflictCol, updateCols string) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflictCol, updateCols)
	}
	return fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s", conflictCol, updateCols)
}
