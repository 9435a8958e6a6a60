package timekeeping

import (
	"context"
	"time"
)

// EventRepository defines data access for the append-only check event log
// and its leave markers. Events are never updated in place; the only
// mutation besides Append is the administrative DeleteLog.
type EventRepository interface {
	// Append inserts a new check event. The database trigger enforces the
	// per-day sequence, so Append returns ErrDuplicateCheckin,
	// ErrDuplicateCheckout or ErrMissingCheckin when the event is rejected.
	Append(ctx context.Context, event Event) (Event, error)

	// HasEvent reports whether an event of the given type already exists
	// for the employee on the given work date.
	HasEvent(ctx context.Context, employeeID string, workDate time.Time, checkType CheckType) (bool, error)

	// ListLogs retrieves raw events joined with employee identity,
	// ordered by timestamp descending.
	ListLogs(ctx context.Context, filter LogFilter) ([]Event, error)

	// GetLog retrieves a single event by its log ID
	GetLog(ctx context.Context, logID int64) (Event, error)

	// DeleteLog removes a single event by its log ID (admin correction)
	DeleteLog(ctx context.Context, logID int64) error

	// ListDayAggregates retrieves per-employee-per-day aggregates
	// (earliest check-in, latest check-out, leave flag) for every
	// (employee, date) pair that has at least one event or a leave
	// marker, plus every active employee on each date in the range when
	// the filter names a single day or range. Results are ordered by
	// employee full name ascending, then date ascending.
	ListDayAggregates(ctx context.Context, filter DayRecordFilter) ([]DayAggregate, error)

	// SetLeave marks an employee as on leave for a work date (idempotent)
	SetLeave(ctx context.Context, employeeID string, workDate time.Time) error

	// ClearLeave removes a leave marker. Returns pgx.ErrNoRows when no
	// marker exists for the pair.
	ClearLeave(ctx context.Context, employeeID string, workDate time.Time) error

	// HasLeave reports whether a leave marker exists for the pair
	HasLeave(ctx context.Context, employeeID string, workDate time.Time) (bool, error)
}
