package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRepository defines the interface for dashboard data access.
// Each method maps to a single aggregate query over the event log.
type DashboardRepository interface {
	// CountDistinctByCheckType counts distinct employees with an event of
	// the given type on the work date
	CountDistinctByCheckType(ctx context.Context, workDate time.Time, checkType string) (int64, error)

	// SumHoursInRange sums per-employee-per-day worked hours for work dates
	// in [from, to] inclusive, clamping each day at zero
	SumHoursInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
