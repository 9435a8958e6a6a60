package timekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/facekeep/timekeep-backend-go/internal/domain/employee"
	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/database"
)

type TimekeepingServiceImpl struct {
	db *database.DB
	timekeeping.EventRepository
	employee.EmployeeRepository
	policy timekeeping.DerivePolicy
}

func NewTimekeepingService(
	db *database.DB,
	eventRepository timekeeping.EventRepository,
	employeeRepository employee.EmployeeRepository,
	policy timekeeping.DerivePolicy,
) timekeeping.TimekeepingService {
	return &TimekeepingServiceImpl{
		db:                 db,
		EventRepository:    eventRepository,
		EmployeeRepository: employeeRepository,
		policy:             policy,
	}
}

// timePtrToString safely converts a *time.Time to an RFC 3339 string.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}

func (s *TimekeepingServiceImpl) toEventResponse(e timekeeping.Event) timekeeping.EventResponse {
	return timekeeping.EventResponse{
		LogID:            e.LogID,
		EmployeeID:       e.EmployeeID,
		EmployeeName:     e.EmployeeName,
		EmployeePosition: e.EmployeePosition,
		WorkDate:         e.WorkDate.Format("2006-01-02"),
		CheckType:        string(e.CheckType),
		Timestamp:        e.Timestamp.In(s.policy.Location).Format(time.RFC3339),
		Similarity:       e.Similarity,
		ProofImageURL:    e.ProofImageURL,
	}
}

// CheckIn implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) CheckIn(ctx context.Context, req timekeeping.CheckInRequest) (timekeeping.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return timekeeping.EventResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.EventResponse{}, employee.ErrEmployeeNotFound
		}
		return timekeeping.EventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return timekeeping.EventResponse{}, employee.ErrEmployeeInactive
	}

	now := time.Now().In(s.policy.Location)
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Cheap pre-check. The database trigger remains the authority, so a
	// concurrent duplicate still surfaces as ErrDuplicateCheckin from Append.
	exists, err := s.EventRepository.HasEvent(ctx, req.EmployeeID, workDate, timekeeping.CheckTypeIn)
	if err != nil {
		return timekeeping.EventResponse{}, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	if exists {
		return timekeeping.EventResponse{}, timekeeping.ErrDuplicateCheckin
	}

	event, err := s.EventRepository.Append(ctx, timekeeping.Event{
		EmployeeID:    req.EmployeeID,
		WorkDate:      workDate,
		CheckType:     timekeeping.CheckTypeIn,
		Timestamp:     now.UTC(),
		Similarity:    req.Similarity,
		ProofImageURL: req.ProofImageURL,
	})
	if err != nil {
		return timekeeping.EventResponse{}, err
	}

	event.EmployeeName = &emp.FullName
	event.EmployeePosition = &emp.Position
	return s.toEventResponse(event), nil
}

// CheckOut implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) CheckOut(ctx context.Context, req timekeeping.CheckOutRequest) (timekeeping.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return timekeeping.EventResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.EventResponse{}, employee.ErrEmployeeNotFound
		}
		return timekeeping.EventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return timekeeping.EventResponse{}, employee.ErrEmployeeInactive
	}

	now := time.Now().In(s.policy.Location)
	workDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	checkedIn, err := s.EventRepository.HasEvent(ctx, req.EmployeeID, workDate, timekeeping.CheckTypeIn)
	if err != nil {
		return timekeeping.EventResponse{}, fmt.Errorf("failed to check existing check-in: %w", err)
	}
	if !checkedIn {
		return timekeeping.EventResponse{}, timekeeping.ErrMissingCheckin
	}

	checkedOut, err := s.EventRepository.HasEvent(ctx, req.EmployeeID, workDate, timekeeping.CheckTypeOut)
	if err != nil {
		return timekeeping.EventResponse{}, fmt.Errorf("failed to check existing check-out: %w", err)
	}
	if checkedOut {
		return timekeeping.EventResponse{}, timekeeping.ErrDuplicateCheckout
	}

	event, err := s.EventRepository.Append(ctx, timekeeping.Event{
		EmployeeID:    req.EmployeeID,
		WorkDate:      workDate,
		CheckType:     timekeeping.CheckTypeOut,
		Timestamp:     now.UTC(),
		Similarity:    req.Similarity,
		ProofImageURL: req.ProofImageURL,
	})
	if err != nil {
		return timekeeping.EventResponse{}, err
	}

	event.EmployeeName = &emp.FullName
	event.EmployeePosition = &emp.Position
	return s.toEventResponse(event), nil
}

// ListDayRecords implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) ListDayRecords(ctx context.Context, filter timekeeping.DayRecordFilter) ([]timekeeping.DayRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// No date constraint means today.
	if filter.Date == nil && filter.DateFrom == nil && filter.DateTo == nil {
		today := time.Now().In(s.policy.Location).Format("2006-01-02")
		filter.Date = &today
	}

	aggregates, err := s.EventRepository.ListDayAggregates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list day aggregates: %w", err)
	}

	statusFilter, constrained := filter.NormalizeStatusFilter()

	responses := make([]timekeeping.DayRecordResponse, 0, len(aggregates))
	for _, agg := range aggregates {
		status, hours := timekeeping.DeriveFromTimes(agg.FirstCheckIn, agg.LastCheckOut, agg.OnLeave, s.policy)
		if constrained && status != statusFilter {
			continue
		}

		var totalHours *float64
		if hours != nil {
			f := hours.InexactFloat64()
			totalHours = &f
		}

		responses = append(responses, timekeeping.DayRecordResponse{
			EmployeeID: agg.EmployeeID,
			FullName:   agg.EmployeeName,
			Email:      agg.EmployeeEmail,
			Position:   agg.EmployeePosition,
			Date:       agg.WorkDate.Format("2006-01-02"),
			CheckIn:    timePtrToString(agg.FirstCheckIn, s.policy.Location),
			CheckOut:   timePtrToString(agg.LastCheckOut, s.policy.Location),
			TotalHours: totalHours,
			Status:     string(status),
		})
	}

	return responses, nil
}

// GetDayRecords implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) GetDayRecords(ctx context.Context, employeeID string, filter timekeeping.DayRecordFilter) ([]timekeeping.DayRecordResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	filter.EmployeeID = &employeeID
	return s.ListDayRecords(ctx, filter)
}

// ListLogs implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) ListLogs(ctx context.Context, filter timekeeping.LogFilter) ([]timekeeping.EventResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	events, err := s.EventRepository.ListLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	responses := make([]timekeeping.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, s.toEventResponse(e))
	}
	return responses, nil
}

// GetLog implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) GetLog(ctx context.Context, logID int64) (timekeeping.EventResponse, error) {
	event, err := s.EventRepository.GetLog(ctx, logID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.EventResponse{}, timekeeping.ErrLogNotFound
		}
		return timekeeping.EventResponse{}, fmt.Errorf("failed to get log: %w", err)
	}
	return s.toEventResponse(event), nil
}

// DeleteLog implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) DeleteLog(ctx context.Context, logID int64) error {
	if err := s.EventRepository.DeleteLog(ctx, logID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.ErrLogNotFound
		}
		return fmt.Errorf("failed to delete log: %w", err)
	}
	return nil
}

// SetLeave implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) SetLeave(ctx context.Context, req timekeeping.LeaveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	workDate, _ := time.Parse("2006-01-02", req.Date)
	if err := s.EventRepository.SetLeave(ctx, req.EmployeeID, workDate); err != nil {
		return fmt.Errorf("failed to set leave marker: %w", err)
	}
	return nil
}

// ClearLeave implements timekeeping.TimekeepingService.
func (s *TimekeepingServiceImpl) ClearLeave(ctx context.Context, req timekeeping.LeaveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	workDate, _ := time.Parse("2006-01-02", req.Date)
	if err := s.EventRepository.ClearLeave(ctx, req.EmployeeID, workDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.ErrLeaveMarkerNotFound
		}
		return fmt.Errorf("failed to clear leave marker: %w", err)
	}
	return nil
}
