package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	"github.com/facekeep/timekeep-backend-go/internal/handler/http/response"
)

type TimekeepingHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListDayRecords(w http.ResponseWriter, r *http.Request)
	GetDayRecords(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	GetLog(w http.ResponseWriter, r *http.Request)
	DeleteLog(w http.ResponseWriter, r *http.Request)
	SetLeave(w http.ResponseWriter, r *http.Request)
	ClearLeave(w http.ResponseWriter, r *http.Request)
}

type TimekeepingHandlerImpl struct {
	timekeepingService timekeeping.TimekeepingService
}

func NewTimekeepingHandler(timekeepingService timekeeping.TimekeepingService) TimekeepingHandler {
	return &TimekeepingHandlerImpl{
		timekeepingService: timekeepingService,
	}
}

// queryParam returns a pointer to the query value, or nil when absent.
func queryParam(r *http.Request, key string) *string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func dayRecordFilterFromQuery(r *http.Request) timekeeping.DayRecordFilter {
	return timekeeping.DayRecordFilter{
		Date:       queryParam(r, "date"),
		DateFrom:   queryParam(r, "date_from"),
		DateTo:     queryParam(r, "date_to"),
		Status:     queryParam(r, "status"),
		Search:     queryParam(r, "search"),
		EmployeeID: queryParam(r, "employee_id"),
	}
}

// CheckIn implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq timekeeping.CheckInRequest

	// Body is optional; similarity and proof come from the capture client.
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
			slog.Error("CheckIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	checkInReq.EmployeeID = chi.URLParam(r, "employee_id")

	eventResponse, err := h.timekeepingService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "employee_id", checkInReq.EmployeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked in", "employee_id", checkInReq.EmployeeID, "log_id", eventResponse.LogID)
	response.Created(w, "Checked in successfully", eventResponse)
}

// CheckOut implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkOutReq timekeeping.CheckOutRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil {
			slog.Error("CheckOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	checkOutReq.EmployeeID = chi.URLParam(r, "employee_id")

	eventResponse, err := h.timekeepingService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "employee_id", checkOutReq.EmployeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee checked out", "employee_id", checkOutReq.EmployeeID, "log_id", eventResponse.LogID)
	response.Created(w, "Checked out successfully", eventResponse)
}

// ListDayRecords implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) ListDayRecords(w http.ResponseWriter, r *http.Request) {
	filter := dayRecordFilterFromQuery(r)

	records, err := h.timekeepingService.ListDayRecords(r.Context(), filter)
	if err != nil {
		slog.Error("ListDayRecords service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetDayRecords implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) GetDayRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")
	filter := dayRecordFilterFromQuery(r)

	records, err := h.timekeepingService.GetDayRecords(r.Context(), employeeID, filter)
	if err != nil {
		slog.Error("GetDayRecords service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListLogs implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	filter := timekeeping.LogFilter{
		EmployeeID: queryParam(r, "employee_id"),
		From:       queryParam(r, "from"),
		To:         queryParam(r, "to"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(w, "limit must be a number", nil)
			return
		}
		filter.Limit = limit
	}

	logs, err := h.timekeepingService.ListLogs(r.Context(), filter)
	if err != nil {
		slog.Error("ListLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// GetLog implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) GetLog(w http.ResponseWriter, r *http.Request) {
	logID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id must be a number", nil)
		return
	}

	logResponse, err := h.timekeepingService.GetLog(r.Context(), logID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logResponse)
}

// DeleteLog implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) DeleteLog(w http.ResponseWriter, r *http.Request) {
	logID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "id must be a number", nil)
		return
	}

	if err := h.timekeepingService.DeleteLog(r.Context(), logID); err != nil {
		slog.Error("DeleteLog service error", "error", err, "log_id", logID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Log deleted", "log_id", logID)
	response.SuccessWithMessage(w, "Log deleted successfully", nil)
}

// SetLeave implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) SetLeave(w http.ResponseWriter, r *http.Request) {
	var leaveReq timekeeping.LeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&leaveReq); err != nil {
		slog.Error("SetLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.timekeepingService.SetLeave(r.Context(), leaveReq); err != nil {
		slog.Error("SetLeave service error", "error", err, "employee_id", leaveReq.EmployeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave marker set", "employee_id", leaveReq.EmployeeID, "date", leaveReq.Date)
	response.Created(w, "Leave marker set", nil)
}

// ClearLeave implements TimekeepingHandler.
func (h *TimekeepingHandlerImpl) ClearLeave(w http.ResponseWriter, r *http.Request) {
	var leaveReq timekeeping.LeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&leaveReq); err != nil {
		slog.Error("ClearLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.timekeepingService.ClearLeave(r.Context(), leaveReq); err != nil {
		slog.Error("ClearLeave service error", "error", err, "employee_id", leaveReq.EmployeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave marker cleared", "employee_id", leaveReq.EmployeeID, "date", leaveReq.Date)
	response.SuccessWithMessage(w, "Leave marker cleared", nil)
}
