package postgresql

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
)

func TestMapSequenceErrorTrigger(t *testing.T) {
	cases := []struct {
		message string
		want    error
	}{
		{"employee already checked in for this date", timekeeping.ErrDuplicateCheckin},
		{"employee already checked out for this date", timekeeping.ErrDuplicateCheckout},
		{"checkout without check-in for this date", timekeeping.ErrMissingCheckin},
	}

	for _, tc := range cases {
		err := mapSequenceError(&pgconn.PgError{Code: "P0001", Message: tc.message}, timekeeping.CheckTypeIn)
		assert.ErrorIs(t, err, tc.want, tc.message)
	}
}

func TestMapSequenceErrorUniqueViolation(t *testing.T) {
	// A concurrent duplicate slips past the trigger's EXISTS check and is
	// rejected by the unique constraint instead.
	uniqueErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "timekeeping_events_employee_day_type_key",
	}

	err := mapSequenceError(uniqueErr, timekeeping.CheckTypeIn)
	assert.ErrorIs(t, err, timekeeping.ErrDuplicateCheckin)

	err = mapSequenceError(uniqueErr, timekeeping.CheckTypeOut)
	assert.ErrorIs(t, err, timekeeping.ErrDuplicateCheckout)
}

func TestMapSequenceErrorPassesThroughUnrelated(t *testing.T) {
	otherConstraint := &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}
	assert.Equal(t, error(otherConstraint), mapSequenceError(otherConstraint, timekeeping.CheckTypeIn))

	fkErr := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fkErr), mapSequenceError(fkErr, timekeeping.CheckTypeIn))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapSequenceError(plain, timekeeping.CheckTypeIn))
}

func TestAggregateWindowDefaultsToLocalDate(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 18:00 UTC on March 2nd is already March 3rd in Jakarta (UTC+7).
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	from, to := aggregateWindow(timekeeping.DayRecordFilter{}, now.In(jakarta))
	assert.Equal(t, "2026-03-03", from)
	assert.Equal(t, "2026-03-03", to)

	from, to = aggregateWindow(timekeeping.DayRecordFilter{}, now)
	assert.Equal(t, "2026-03-02", from)
	assert.Equal(t, "2026-03-02", to)
}

func TestAggregateWindowRangeWins(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	date := "2026-02-10"
	dateFrom := "2026-01-01"
	dateTo := "2026-01-31"

	from, to := aggregateWindow(timekeeping.DayRecordFilter{Date: &date}, now)
	assert.Equal(t, "2026-02-10", from)
	assert.Equal(t, "2026-02-10", to)

	from, to = aggregateWindow(timekeeping.DayRecordFilter{Date: &date, DateFrom: &dateFrom, DateTo: &dateTo}, now)
	assert.Equal(t, "2026-01-01", from)
	assert.Equal(t, "2026-01-31", to)

	// Open-ended range runs up to today.
	from, to = aggregateWindow(timekeeping.DayRecordFilter{DateFrom: &dateFrom}, now)
	assert.Equal(t, "2026-01-01", from)
	assert.Equal(t, "2026-03-02", to)
}
