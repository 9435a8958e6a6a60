package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/facekeep/timekeep-backend-go/internal/pkg/database"
)

// testDatabase connects to TEST_DATABASE_URL, skipping the test when the
// variable is unset. The target database must have db/schema.sql applied.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	return db
}

// truncateAllTables removes all data between tests.
func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	tables := []string{
		"refresh_tokens",
		"users",
		"timekeeping_events",
		"leave_markers",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	require.NoError(t, tx.Commit(ctx))
}

// createTestEmployee inserts an employee row and returns its ID.
func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, fullName, email string) string {
	t.Helper()

	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, full_name, email, position, role, active)
		VALUES (gen_random_uuid(), $1, $2, 'Backend Engineer', 'employee', TRUE)
		RETURNING id
	`, fullName, email).Scan(&id)
	require.NoError(t, err)
	return id
}
