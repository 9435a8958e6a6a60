package timekeeping

import (
	"strings"

	"github.com/facekeep/timekeep-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID    string   `json:"-"`
	Similarity    *float64 `json:"similarity,omitempty"`
	ProofImageURL *string  `json:"proof_image_url,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	return validateCheckRequest(r.EmployeeID, r.Similarity, r.ProofImageURL)
}

type CheckOutRequest struct {
	EmployeeID    string   `json:"-"`
	Similarity    *float64 `json:"similarity,omitempty"`
	ProofImageURL *string  `json:"proof_image_url,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	return validateCheckRequest(r.EmployeeID, r.Similarity, r.ProofImageURL)
}

func validateCheckRequest(employeeID string, similarity *float64, proofURL *string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if similarity != nil && (*similarity < 0 || *similarity > 1) {
		errs = append(errs, validator.ValidationError{
			Field:   "similarity",
			Message: "similarity must be between 0 and 1",
		})
	}

	if proofURL != nil && validator.IsEmpty(*proofURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "proof_image_url",
			Message: "proof_image_url must not be blank when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	LogID            int64    `json:"log_id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	EmployeePosition *string  `json:"employee_position,omitempty"`
	WorkDate         string   `json:"work_date"`
	CheckType        string   `json:"check_type"`
	Timestamp        string   `json:"timestamp"`
	Similarity       *float64 `json:"similarity,omitempty"`
	ProofImageURL    *string  `json:"proof_image_url,omitempty"`
}

// ========================================
// DAY RECORD DTOs (query/filter layer)
// ========================================

type DayRecordFilter struct {
	Date       *string `json:"date,omitempty"`      // YYYY-MM-DD
	DateFrom   *string `json:"date_from,omitempty"` // YYYY-MM-DD, inclusive
	DateTo     *string `json:"date_to,omitempty"`   // YYYY-MM-DD, inclusive
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"` // case-insensitive name substring
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (f *DayRecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateFrom != nil && *f.DateFrom != "" {
		if _, valid := validator.IsValidDate(*f.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateTo != nil && *f.DateTo != "" {
		if _, valid := validator.IsValidDate(*f.DateTo); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && *f.Status != "" && *f.Status != "all" {
		if _, ok := ParseStatus(*f.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: Present, Late, Absent, Leave, Not-checked-out",
			})
		}
	}

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	// The range is authoritative when both a single date and a range are sent.
	if (f.DateFrom != nil && *f.DateFrom != "") || (f.DateTo != nil && *f.DateTo != "") {
		f.Date = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DayRecordResponse struct {
	EmployeeID       string   `json:"employee_id"`
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	Position         string   `json:"position"`
	Date             string   `json:"date"`
	CheckIn          *string  `json:"check_in"`
	CheckOut         *string  `json:"check_out"`
	TotalHours       *float64 `json:"total_hours"`
	Status           string   `json:"status"`
}

// ========================================
// RAW LOG DTOs (audit trail)
// ========================================

type LogFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	From       *string `json:"from,omitempty"` // YYYY-MM-DD
	To         *string `json:"to,omitempty"`   // YYYY-MM-DD
	Limit      int     `json:"limit"`
}

func (f *LogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.From != nil && *f.From != "" {
		if _, valid := validator.IsValidDate(*f.From); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.To != nil && *f.To != "" {
		if _, valid := validator.IsValidDate(*f.To); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50 // Default limit
	}
	if f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 500",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// LEAVE MARKER DTOs
// ========================================

type LeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

func (r *LeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// NormalizeStatusFilter resolves the filter's status to the canonical enum,
// treating "", "all" and nil as no constraint.
func (f *DayRecordFilter) NormalizeStatusFilter() (Status, bool) {
	if f.Status == nil || *f.Status == "" || strings.EqualFold(*f.Status, "all") {
		return "", false
	}
	s, ok := ParseStatus(*f.Status)
	return s, ok
}
