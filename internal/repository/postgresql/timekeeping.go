package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/database"
)

type timekeepingRepository struct {
	db  *database.DB
	loc *time.Location
}

// NewTimekeepingRepository creates the event log repository. loc is the zone
// work dates are judged in; it must match the derive policy's location.
func NewTimekeepingRepository(db *database.DB, loc *time.Location) timekeeping.EventRepository {
	return &timekeepingRepository{db: db, loc: loc}
}

// mapSequenceError translates storage-level sequence rejections into domain
// sentinels. The trigger raises P0001 with a named message, but its EXISTS
// checks cannot see a concurrent uncommitted insert, so the loser of a
// simultaneous duplicate is rejected by the unique constraint (23505)
// instead; both paths must surface as the same typed error.
func mapSequenceError(err error, checkType timekeeping.CheckType) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "P0001":
		switch {
		case strings.Contains(pgErr.Message, "already checked in"):
			return timekeeping.ErrDuplicateCheckin
		case strings.Contains(pgErr.Message, "already checked out"):
			return timekeeping.ErrDuplicateCheckout
		case strings.Contains(pgErr.Message, "without check-in"):
			return timekeeping.ErrMissingCheckin
		}
	case "23505":
		if pgErr.ConstraintName == "timekeeping_events_employee_day_type_key" {
			if checkType == timekeeping.CheckTypeIn {
				return timekeeping.ErrDuplicateCheckin
			}
			return timekeeping.ErrDuplicateCheckout
		}
	}
	return err
}

// Append implements timekeeping.EventRepository.
func (t *timekeepingRepository) Append(ctx context.Context, event timekeeping.Event) (timekeeping.Event, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO timekeeping_events (
			employee_id, work_date, check_type, ts, similarity, proof_image_url
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING log_id
	`

	err := q.QueryRow(ctx, query,
		event.EmployeeID,
		event.WorkDate,
		string(event.CheckType),
		event.Timestamp,
		event.Similarity,
		event.ProofImageURL,
	).Scan(&event.LogID)

	if err != nil {
		if mapped := mapSequenceError(err, event.CheckType); mapped != err {
			return timekeeping.Event{}, mapped
		}
		return timekeeping.Event{}, fmt.Errorf("failed to append event: %w", err)
	}

	return event, nil
}

// HasEvent implements timekeeping.EventRepository.
func (t *timekeepingRepository) HasEvent(ctx context.Context, employeeID string, workDate time.Time, checkType timekeeping.CheckType) (bool, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM timekeeping_events
			WHERE employee_id = $1 AND work_date = $2 AND check_type = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, workDate, string(checkType)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}
	return exists, nil
}

// ListLogs implements timekeeping.EventRepository.
func (t *timekeepingRepository) ListLogs(ctx context.Context, filter timekeeping.LogFilter) ([]timekeeping.Event, error) {
	q := GetQuerier(ctx, t.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND tk.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil && *filter.From != "" {
		baseWhere += fmt.Sprintf(" AND tk.work_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil && *filter.To != "" {
		baseWhere += fmt.Sprintf(" AND tk.work_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT tk.log_id, tk.employee_id, tk.work_date, tk.check_type, tk.ts,
			   tk.similarity, tk.proof_image_url, e.full_name, e.position
		FROM timekeeping_events tk
		LEFT JOIN employees e ON e.id = tk.employee_id
		WHERE %s
		ORDER BY tk.ts DESC
		LIMIT $%d
	`, baseWhere, argIdx)
	args = append(args, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var events []timekeeping.Event
	for rows.Next() {
		var e timekeeping.Event
		var checkType string
		if err := rows.Scan(&e.LogID, &e.EmployeeID, &e.WorkDate, &checkType, &e.Timestamp,
			&e.Similarity, &e.ProofImageURL, &e.EmployeeName, &e.EmployeePosition); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		e.CheckType = timekeeping.CheckType(checkType)
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetLog implements timekeeping.EventRepository.
func (t *timekeepingRepository) GetLog(ctx context.Context, logID int64) (timekeeping.Event, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT tk.log_id, tk.employee_id, tk.work_date, tk.check_type, tk.ts,
			   tk.similarity, tk.proof_image_url, e.full_name, e.position
		FROM timekeeping_events tk
		LEFT JOIN employees e ON e.id = tk.employee_id
		WHERE tk.log_id = $1
	`

	var e timekeeping.Event
	var checkType string
	err := q.QueryRow(ctx, query, logID).Scan(&e.LogID, &e.EmployeeID, &e.WorkDate, &checkType,
		&e.Timestamp, &e.Similarity, &e.ProofImageURL, &e.EmployeeName, &e.EmployeePosition)
	if err != nil {
		return timekeeping.Event{}, err
	}
	e.CheckType = timekeeping.CheckType(checkType)
	return e, nil
}

// DeleteLog implements timekeeping.EventRepository.
func (t *timekeepingRepository) DeleteLog(ctx context.Context, logID int64) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `DELETE FROM timekeeping_events WHERE log_id = $1`, logID)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListDayAggregates implements timekeeping.EventRepository.
// One row per (active employee, date) in the requested window, left joined
// with that day's events and leave marker. Employees with no events still get
// a row so the deriver can mark them Absent.
func (t *timekeepingRepository) ListDayAggregates(ctx context.Context, filter timekeeping.DayRecordFilter) ([]timekeeping.DayAggregate, error) {
	q := GetQuerier(ctx, t.db)

	dateFrom, dateTo := aggregateWindow(filter, time.Now().In(t.loc))

	baseWhere := "1=1"
	args := []interface{}{dateFrom, dateTo}
	argIdx := 3

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND e.id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT e.id, e.full_name, e.email, e.position, d.work_date,
			   MIN(tk.ts) FILTER (WHERE tk.check_type = 'checkin')  AS first_check_in,
			   MAX(tk.ts) FILTER (WHERE tk.check_type = 'checkout') AS last_check_out,
			   (lm.employee_id IS NOT NULL) AS on_leave
		FROM employees e
		CROSS JOIN generate_series($1::date, $2::date, '1 day') AS d(work_date)
		LEFT JOIN timekeeping_events tk
			ON tk.employee_id = e.id AND tk.work_date = d.work_date
		LEFT JOIN leave_markers lm
			ON lm.employee_id = e.id AND lm.work_date = d.work_date
		WHERE e.deleted_at IS NULL AND e.active AND %s
		GROUP BY e.id, e.full_name, e.email, e.position, d.work_date, lm.employee_id
		ORDER BY e.full_name ASC, d.work_date ASC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list day aggregates: %w", err)
	}
	defer rows.Close()

	var aggregates []timekeeping.DayAggregate
	for rows.Next() {
		var agg timekeeping.DayAggregate
		if err := rows.Scan(&agg.EmployeeID, &agg.EmployeeName, &agg.EmployeeEmail, &agg.EmployeePosition,
			&agg.WorkDate, &agg.FirstCheckIn, &agg.LastCheckOut, &agg.OnLeave); err != nil {
			return nil, fmt.Errorf("failed to scan day aggregate: %w", err)
		}
		aggregates = append(aggregates, agg)
	}
	return aggregates, rows.Err()
}

// aggregateWindow resolves the filter to an inclusive [from, to] date pair,
// defaulting to now's calendar date. now must already carry the configured
// location so the default does not drift around midnight.
func aggregateWindow(filter timekeeping.DayRecordFilter, now time.Time) (string, string) {
	today := now.Format("2006-01-02")

	if filter.DateFrom != nil || filter.DateTo != nil {
		from, to := today, today
		if filter.DateFrom != nil && *filter.DateFrom != "" {
			from = *filter.DateFrom
		}
		if filter.DateTo != nil && *filter.DateTo != "" {
			to = *filter.DateTo
		} else if filter.DateFrom != nil {
			to = today
		}
		return from, to
	}
	if filter.Date != nil && *filter.Date != "" {
		return *filter.Date, *filter.Date
	}
	return today, today
}

// SetLeave implements timekeeping.EventRepository.
func (t *timekeepingRepository) SetLeave(ctx context.Context, employeeID string, workDate time.Time) error {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO leave_markers (employee_id, work_date)
		VALUES ($1, $2)
		ON CONFLICT (employee_id, work_date) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, employeeID, workDate); err != nil {
		return fmt.Errorf("failed to set leave marker: %w", err)
	}
	return nil
}

// ClearLeave implements timekeeping.EventRepository.
func (t *timekeepingRepository) ClearLeave(ctx context.Context, employeeID string, workDate time.Time) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_markers WHERE employee_id = $1 AND work_date = $2`, employeeID, workDate)
	if err != nil {
		return fmt.Errorf("failed to clear leave marker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// HasLeave implements timekeeping.EventRepository.
func (t *timekeepingRepository) HasLeave(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	q := GetQuerier(ctx, t.db)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM leave_markers WHERE employee_id = $1 AND work_date = $2)`
	if err := q.QueryRow(ctx, query, employeeID, workDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave marker: %w", err)
	}
	return exists, nil
}
