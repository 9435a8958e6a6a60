package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	"github.com/facekeep/timekeep-backend-go/internal/repository/postgresql"
)

func TestCountDistinctByCheckTypeExcludesInactive(t *testing.T) {
	db := testDatabase(t)
	truncateAllTables(t, db)

	ctx := context.Background()
	eventRepo := postgresql.NewTimekeepingRepository(db, time.UTC)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	anaID := createTestEmployee(t, ctx, db, "Ana Silva", "ana@example.com")
	budiID := createTestEmployee(t, ctx, db, "Budi Santoso", "budi@example.com")

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	appendEvent(t, ctx, eventRepo, anaID, workDate, timekeeping.CheckTypeIn, workDate.Add(9*time.Hour))
	appendEvent(t, ctx, eventRepo, budiID, workDate, timekeeping.CheckTypeIn, workDate.Add(9*time.Hour))

	count, err := dashboardRepo.CountDistinctByCheckType(ctx, workDate, "checkin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Deactivating Budi after his check-in drops him from the count and
	// the headcount alike.
	_, err = db.Exec(ctx, `UPDATE employees SET active = FALSE WHERE id = $1`, budiID)
	require.NoError(t, err)

	count, err = dashboardRepo.CountDistinctByCheckType(ctx, workDate, "checkin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	active, err := employeeRepo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
	assert.LessOrEqual(t, count, active, "checked-in count must never exceed the active headcount")
}

func TestSumHoursInRange(t *testing.T) {
	db := testDatabase(t)
	truncateAllTables(t, db)

	ctx := context.Background()
	eventRepo := postgresql.NewTimekeepingRepository(db, time.UTC)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	anaID := createTestEmployee(t, ctx, db, "Ana Silva", "ana@example.com")

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	appendEvent(t, ctx, eventRepo, anaID, workDate, timekeeping.CheckTypeIn, workDate.Add(8*time.Hour+55*time.Minute))
	appendEvent(t, ctx, eventRepo, anaID, workDate, timekeeping.CheckTypeOut, workDate.Add(17*time.Hour+30*time.Minute))

	sum, err := dashboardRepo.SumHoursInRange(ctx, workDate, workDate.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.True(t, sum.Round(2).Equal(decimal.RequireFromString("8.58")), "got %s", sum)
}
