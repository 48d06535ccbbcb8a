package database_test

import (
	"path/filepath"
	"testing"

	"edge-shortener/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpen_InMemory_CreatesSchema verifies both tables exist after migration
func TestOpen_InMemory_CreatesSchema(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"links", "clicks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

// TestRunMigrations_Twice_IsNoop verifies re-running migrations is not an error
func TestRunMigrations_Twice_IsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edge.db")

	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.NoError(t, database.RunMigrations(db))
}
