package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWithMigrations(t *testing.T) {
	t.Run("successfully opens database and runs migrations", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		conn, err := OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		require.NotNil(t, conn)
		defer conn.Close()

		// schema_migrations plus all core tables must exist
		for _, table := range []string{"schema_migrations", "customers", "vehicles", "jobs"} {
			var count int
			err = conn.QueryRow(
				"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
			).Scan(&count)
			require.NoError(t, err)
			assert.Equal(t, 1, count, "table %s should exist after migrations", table)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		conn, err := OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		conn.Close()

		// Reopening must skip already-applied migrations without error
		conn, err = OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		defer conn.Close()

		var applied int
		err = conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
		require.NoError(t, err)
		assert.Equal(t, 2, applied)
	})

	t.Run("foreign keys enforced on migrated schema", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		conn, err := OpenWithMigrations(dbPath, nil)
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Exec("INSERT INTO vehicles (registration, customer_id) VALUES ('AB12CDE', 9999)")
		assert.Error(t, err, "insert with dangling customer_id should violate foreign key")
	})
}
