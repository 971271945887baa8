package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLite_FreshThenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	first, fresh, err := ConnectSQLite(path)
	require.NoError(t, err)
	assert.True(t, fresh)
	require.NoError(t, Seed(first, "one", "two"))
	require.NoError(t, first.Close())

	second, fresh, err := ConnectSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	assert.False(t, fresh, "reopening an existing file must not report it as fresh")

	var titles []string
	require.NoError(t, second.Select(&titles, "SELECT title FROM todos ORDER BY id"))
	assert.Equal(t, []string{"one", "two"}, titles)
}

func TestConnectSQLite_Memory(t *testing.T) {
	db, fresh, err := ConnectSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, fresh)

	require.NoError(t, Seed(db))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM todos WHERE completed = 0"))
	assert.Equal(t, len(DemoTitles), count)
}

func TestConnectPostgres_NoDSN(t *testing.T) {
	_, err := ConnectPostgres("")
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestConnectPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := ConnectPostgres(dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())
}
