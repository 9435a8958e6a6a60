package timekeeping

import (
	"context"
)

// TimekeepingService defines business logic for check events, derived day
// records and leave markers.
type TimekeepingService interface {
	// CheckIn records a check-in event for the employee, enforcing the
	// one-check-in-per-day sequence rule.
	CheckIn(ctx context.Context, req CheckInRequest) (EventResponse, error)

	// CheckOut records a check-out event for the employee. Fails when the
	// employee has not checked in today or has already checked out.
	CheckOut(ctx context.Context, req CheckOutRequest) (EventResponse, error)

	// ListDayRecords derives per-employee day records for the filter
	ListDayRecords(ctx context.Context, filter DayRecordFilter) ([]DayRecordResponse, error)

	// GetDayRecords derives day records for one employee across a date range
	GetDayRecords(ctx context.Context, employeeID string, filter DayRecordFilter) ([]DayRecordResponse, error)

	// ListLogs retrieves the raw audit trail, newest first
	ListLogs(ctx context.Context, filter LogFilter) ([]EventResponse, error)

	// GetLog retrieves a single raw event by log ID
	GetLog(ctx context.Context, logID int64) (EventResponse, error)

	// DeleteLog removes a single raw event (admin correction)
	DeleteLog(ctx context.Context, logID int64) error

	// SetLeave marks an employee as on leave for a date
	SetLeave(ctx context.Context, req LeaveRequest) error

	// ClearLeave removes a leave marker for a date
	ClearLeave(ctx context.Context, req LeaveRequest) error
}
