package db_test

import (
	"testing"

	"github.com/okravets/freightdesk/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesKVTable(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	var name string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv", name)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// Running the migration set again must not fail or drop data.
	_, err = database.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('a', '1', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(database))

	var value string
	require.NoError(t, database.QueryRow(`SELECT value FROM kv WHERE key = 'a'`).Scan(&value))
	assert.Equal(t, "1", value)
}
