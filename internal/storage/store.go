package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pocketledger/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the single durable backing store for users, categories,
// transactions and the audit log. It is constructed once at startup and
// injected everywhere it is needed.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path, applies
// migrations and seeds the template category catalog. Every step is
// idempotent, so Open is safe to repeat across process restarts.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// WAL keeps concurrent readers from blocking behind the writer;
	// foreign_keys turns on cascade enforcement, which SQLite leaves off
	// by default.
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := applySchema(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db}

	if err := s.seedTemplates(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed template categories: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// seedTemplates inserts every catalog entry that is not already present,
// keyed on (name, type) among template rows. Re-running never duplicates.
func (s *Store) seedTemplates(ctx context.Context) error {
	const insert = `
		INSERT INTO categories (name, icon, color, type, is_template)
		SELECT ?, ?, ?, ?, TRUE
		WHERE NOT EXISTS (
			SELECT 1 FROM categories
			WHERE name = ? AND type = ? AND is_template = TRUE
		)`

	stmt, err := s.db.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare seed statement: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, c := range core.TemplateCatalog {
		res, err := stmt.ExecContext(ctx, c.Name, c.Icon, c.Color, c.Type, c.Name, c.Type)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("seed category %q: rows affected: %w", c.Name, err)
		}
		inserted += n
	}

	if inserted > 0 {
		slog.InfoContext(ctx, "Seeded template categories",
			"inserted", inserted,
			"catalog_size", len(core.TemplateCatalog))
	}

	return nil
}

// timeText scans SQLite DATETIME values, which arrive as strings in the
// "2006-01-02 15:04:05" form that CURRENT_TIMESTAMP produces.
type timeText struct {
	time.Time
}

func (t *timeText) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *timeText) parse(s string) error {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
