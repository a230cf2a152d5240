package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/okravets/freightdesk/internal/db"
)

// SQLiteStore implements Store over the kv table. It is constructed over
// db.DBTX so the same code serves both direct and tx-scoped access.
type SQLiteStore struct {
	db db.DBTX
}

// NewSQLiteStore creates a Store backed by the given database or transaction.
func NewSQLiteStore(dbtx db.DBTX) *SQLiteStore {
	return &SQLiteStore{db: dbtx}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if isFullError(err) {
			return fmt.Errorf("writing key %q: %w", key, ErrQuotaExceeded)
		}
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// isFullError reports whether err is SQLite's out-of-space condition
// (SQLITE_FULL). The driver does not expose a typed error for it.
func isFullError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database or disk is full")
}
