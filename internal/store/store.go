package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// VocabRepo returns the saved-word repository.
func (s *Store) VocabRepo() *VocabRepo {
	return &VocabRepo{drv: s.drv}
}

// LookupCache returns the lookup result cache.
func (s *Store) LookupCache() *LookupCache {
	return &LookupCache{drv: s.drv}
}

// LLMRequestRepo returns the LLM request log.
func (s *Store) LLMRequestRepo() *LLMRequestRepo {
	return &LLMRequestRepo{drv: s.drv}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. NOOKCLASS_DB environment variable
// 2. $XDG_DATA_HOME/nookclass/nookclass.db
// 3. ~/.local/share/nookclass/nookclass.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("NOOKCLASS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "nookclass", "nookclass.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// query runs a built statement and scans every row into v, a pointer to a
// slice of row structs.
func query(ctx context.Context, ex dialect.ExecQuerier, q entsql.Querier, v any) error {
	stmt, args := q.Query()
	var rows entsql.Rows
	if err := ex.Query(ctx, stmt, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, v)
}

// exec runs a built statement and returns the number of affected rows.
func exec(ctx context.Context, ex dialect.ExecQuerier, q entsql.Querier) (int64, error) {
	stmt, args := q.Query()
	var res sql.Result
	if err := ex.Exec(ctx, stmt, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
