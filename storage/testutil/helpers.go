// Package testutil provides shared database helpers for storage tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/gms/db"
)

// SetupTestDB creates an in-memory SQLite database with the production
// schema applied, so test schema always matches migrations.
func SetupTestDB(t *testing.T) *sql.DB {
	testDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	err = db.Migrate(testDB, nil)
	require.NoError(t, err, "Failed to run migrations")

	return testDB
}

// SetupEmptyDB creates an in-memory SQLite database WITHOUT the schema.
// Used for testing error handling when tables are missing.
func SetupEmptyDB(t *testing.T) *sql.DB {
	testDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	return testDB
}
