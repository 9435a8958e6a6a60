package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facekeep/timekeep-backend-go/internal/domain/dashboard"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountDistinctByCheckType implements dashboard.DashboardRepository.
func (d *dashboardRepository) CountDistinctByCheckType(ctx context.Context, workDate time.Time, checkType string) (int64, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT COUNT(DISTINCT tk.employee_id)
		FROM timekeeping_events tk
		JOIN employees e ON e.id = tk.employee_id AND e.deleted_at IS NULL AND e.active
		WHERE tk.work_date = $1 AND tk.check_type = $2
	`

	var count int64
	if err := q.QueryRow(ctx, query, workDate, checkType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct %s events: %w", checkType, err)
	}
	return count, nil
}

// SumHoursInRange implements dashboard.DashboardRepository.
// Mirrors the read-side derivation: earliest check-in to latest check-out per
// employee per day, never below zero, summed over the window.
func (d *dashboardRepository) SumHoursInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT COALESCE(SUM(GREATEST(day_hours, 0)), 0)
		FROM (
			SELECT EXTRACT(EPOCH FROM (
				MAX(ts) FILTER (WHERE check_type = 'checkout') -
				MIN(ts) FILTER (WHERE check_type = 'checkin')
			)) / 3600 AS day_hours
			FROM timekeeping_events
			WHERE work_date BETWEEN $1 AND $2
			GROUP BY employee_id, work_date
		) per_day
		WHERE day_hours IS NOT NULL
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum hours in range: %w", err)
	}
	return total, nil
}
