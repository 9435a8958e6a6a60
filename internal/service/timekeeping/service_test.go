package timekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facekeep/timekeep-backend-go/internal/domain/employee"
	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
)

const (
	testEmployeeID = "0d4e9b47-3c56-4cf8-8a8e-5a1f6c2b9d31"
	otherEmployee  = "7f6f3a25-98b1-4a6e-9d2e-4f0cf1b7a812"
)

type fakeEventRepo struct {
	events []timekeeping.Event
	leave  map[string]map[string]bool
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{leave: make(map[string]map[string]bool), nextID: 1}
}

func (f *fakeEventRepo) Append(ctx context.Context, event timekeeping.Event) (timekeeping.Event, error) {
	// Mirrors the database trigger.
	for _, e := range f.events {
		if e.EmployeeID != event.EmployeeID || !e.WorkDate.Equal(event.WorkDate) {
			continue
		}
		if e.CheckType == event.CheckType {
			if event.CheckType == timekeeping.CheckTypeIn {
				return timekeeping.Event{}, timekeeping.ErrDuplicateCheckin
			}
			return timekeeping.Event{}, timekeeping.ErrDuplicateCheckout
		}
	}
	if event.CheckType == timekeeping.CheckTypeOut {
		hasIn := false
		for _, e := range f.events {
			if e.EmployeeID == event.EmployeeID && e.WorkDate.Equal(event.WorkDate) && e.CheckType == timekeeping.CheckTypeIn {
				hasIn = true
				break
			}
		}
		if !hasIn {
			return timekeeping.Event{}, timekeeping.ErrMissingCheckin
		}
	}

	event.LogID = f.nextID
	f.nextID++
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) HasEvent(ctx context.Context, employeeID string, workDate time.Time, checkType timekeeping.CheckType) (bool, error) {
	for _, e := range f.events {
		if e.EmployeeID == employeeID && e.WorkDate.Equal(workDate) && e.CheckType == checkType {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) ListLogs(ctx context.Context, filter timekeeping.LogFilter) ([]timekeeping.Event, error) {
	out := make([]timekeeping.Event, 0, len(f.events))
	for i := len(f.events) - 1; i >= 0; i-- {
		e := f.events[i]
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, e)
		if len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetLog(ctx context.Context, logID int64) (timekeeping.Event, error) {
	for _, e := range f.events {
		if e.LogID == logID {
			return e, nil
		}
	}
	return timekeeping.Event{}, pgx.ErrNoRows
}

func (f *fakeEventRepo) DeleteLog(ctx context.Context, logID int64) error {
	for i, e := range f.events {
		if e.LogID == logID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeEventRepo) ListDayAggregates(ctx context.Context, filter timekeeping.DayRecordFilter) ([]timekeeping.DayAggregate, error) {
	type key struct {
		employeeID string
		date       string
	}
	aggs := make(map[key]*timekeeping.DayAggregate)
	for _, e := range f.events {
		k := key{e.EmployeeID, e.WorkDate.Format("2006-01-02")}
		agg, ok := aggs[k]
		if !ok {
			workDate := e.WorkDate
			agg = &timekeeping.DayAggregate{EmployeeID: e.EmployeeID, WorkDate: workDate}
			aggs[k] = agg
		}
		ts := e.Timestamp
		switch e.CheckType {
		case timekeeping.CheckTypeIn:
			if agg.FirstCheckIn == nil || ts.Before(*agg.FirstCheckIn) {
				agg.FirstCheckIn = &ts
			}
		case timekeeping.CheckTypeOut:
			if agg.LastCheckOut == nil || ts.After(*agg.LastCheckOut) {
				agg.LastCheckOut = &ts
			}
		}
	}
	for employeeID, dates := range f.leave {
		for date := range dates {
			k := key{employeeID, date}
			if _, ok := aggs[k]; !ok {
				workDate, _ := time.Parse("2006-01-02", date)
				aggs[k] = &timekeeping.DayAggregate{EmployeeID: employeeID, WorkDate: workDate}
			}
			aggs[k].OnLeave = true
		}
	}

	var out []timekeeping.DayAggregate
	for k, agg := range aggs {
		if filter.EmployeeID != nil && k.employeeID != *filter.EmployeeID {
			continue
		}
		if filter.Date != nil && k.date != *filter.Date {
			continue
		}
		if filter.DateFrom != nil && k.date < *filter.DateFrom {
			continue
		}
		if filter.DateTo != nil && k.date > *filter.DateTo {
			continue
		}
		out = append(out, *agg)
	}
	return out, nil
}

func (f *fakeEventRepo) SetLeave(ctx context.Context, employeeID string, workDate time.Time) error {
	date := workDate.Format("2006-01-02")
	if f.leave[employeeID] == nil {
		f.leave[employeeID] = make(map[string]bool)
	}
	f.leave[employeeID][date] = true
	return nil
}

func (f *fakeEventRepo) ClearLeave(ctx context.Context, employeeID string, workDate time.Time) error {
	date := workDate.Format("2006-01-02")
	if !f.leave[employeeID][date] {
		return pgx.ErrNoRows
	}
	delete(f.leave[employeeID], date)
	return nil
}

func (f *fakeEventRepo) HasLeave(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	return f.leave[employeeID][workDate.Format("2006-01-02")], nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: map[string]employee.Employee{
			testEmployeeID: {
				ID:       testEmployeeID,
				FullName: "Ana Silva",
				Email:    "ana@example.com",
				Position: "Engineer",
				Role:     employee.RoleEmployee,
				Active:   true,
			},
			otherEmployee: {
				ID:       otherEmployee,
				FullName: "Budi Santoso",
				Email:    "budi@example.com",
				Position: "Designer",
				Role:     employee.RoleEmployee,
				Active:   false,
			},
		},
	}
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	f.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, emp := range f.employees {
		if emp.Active {
			count++
		}
	}
	return count, nil
}

func newTestService() timekeeping.TimekeepingService {
	return NewTimekeepingService(nil, newFakeEventRepo(), newFakeEmployeeRepo(), timekeeping.DerivePolicy{
		LateThresholdMinutes: 9 * 60,
		Location:             time.UTC,
	})
}

func TestCheckInThenCheckOut(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	in, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	assert.Equal(t, "checkin", in.CheckType)
	require.NotNil(t, in.EmployeeName)
	assert.Equal(t, "Ana Silva", *in.EmployeeName)

	out, err := svc.CheckOut(ctx, timekeeping.CheckOutRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	assert.Equal(t, "checkout", out.CheckType)
}

func TestCheckInTwiceRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, timekeeping.ErrDuplicateCheckin)
}

func TestCheckOutWithoutCheckInRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckOut(ctx, timekeeping.CheckOutRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, timekeeping.ErrMissingCheckin)
}

func TestCheckOutTwiceRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, timekeeping.CheckOutRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, timekeeping.CheckOutRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, timekeeping.ErrDuplicateCheckout)
}

func TestCheckInUnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: "11111111-2222-4333-8444-555555555555"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckInInactiveEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: otherEmployee})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestListDayRecordsDerivesStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	records, err := svc.ListDayRecords(ctx, timekeeping.DayRecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, string(timekeeping.StatusNotCheckedOut), records[0].Status)
	assert.Nil(t, records[0].TotalHours)
}

func TestListDayRecordsStatusFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	status := "Present"
	records, err := svc.ListDayRecords(ctx, timekeeping.DayRecordFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, records)

	status = "Not-checked-out"
	records, err = svc.ListDayRecords(ctx, timekeeping.DayRecordFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLeaveMarkerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	today := time.Now().UTC().Format("2006-01-02")
	req := timekeeping.LeaveRequest{EmployeeID: testEmployeeID, Date: today}

	require.NoError(t, svc.SetLeave(ctx, req))

	records, err := svc.ListDayRecords(ctx, timekeeping.DayRecordFilter{Date: &today})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, string(timekeeping.StatusLeave), records[0].Status)

	require.NoError(t, svc.ClearLeave(ctx, req))

	err = svc.ClearLeave(ctx, req)
	assert.ErrorIs(t, err, timekeeping.ErrLeaveMarkerNotFound)
}

func TestDeleteLog(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	in, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLog(ctx, in.LogID))

	err = svc.DeleteLog(ctx, in.LogID)
	assert.ErrorIs(t, err, timekeeping.ErrLogNotFound)

	_, err = svc.GetLog(ctx, in.LogID)
	assert.ErrorIs(t, err, timekeeping.ErrLogNotFound)
}

func TestListLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	in, err := svc.CheckIn(ctx, timekeeping.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)
	out, err := svc.CheckOut(ctx, timekeeping.CheckOutRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	logs, err := svc.ListLogs(ctx, timekeeping.LogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, out.LogID, logs[0].LogID)
	assert.Equal(t, in.LogID, logs[1].LogID)
}
