package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okravets/freightdesk/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

// readKV reads a kv row back through the unit of work.
func readKV(uow *db.SQLiteUnitOfWork, key string) (string, bool) {
	var value string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
		if err := row.Scan(&value); err != nil {
			return nil // not found
		}
		found = true
		return nil
	})
	return value, found
}

func TestUnitOfWork_Commit(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES ('k', 'v', '2026-01-01T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)

	value, found := readKV(uow, "k")
	assert.True(t, found)
	assert.Equal(t, "v", value)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES ('k', 'v', '2026-01-01T00:00:00Z')`); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	_, found := readKV(uow, "k")
	assert.False(t, found, "insert should have been rolled back")
}

func TestUnitOfWork_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES ('k', 'v', '2026-01-01T00:00:00Z')`); err != nil {
				return err
			}
			panic("boom")
		})
	})

	_, found := readKV(uow, "k")
	assert.False(t, found, "insert should have been rolled back after panic")
}
