package response

import (
	"errors"
	"net/http"

	"github.com/facekeep/timekeep-backend-go/internal/domain/auth"
	"github.com/facekeep/timekeep-backend-go/internal/domain/employee"
	"github.com/facekeep/timekeep-backend-go/internal/domain/report"
	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")

	// Timekeeping sequence violations
	case errors.Is(err, timekeeping.ErrDuplicateCheckin):
		Conflict(w, "Employee has already checked in today")
	case errors.Is(err, timekeeping.ErrDuplicateCheckout):
		Conflict(w, "Employee has already checked out today")
	case errors.Is(err, timekeeping.ErrMissingCheckin):
		Conflict(w, "Employee has not checked in today")
	case errors.Is(err, timekeeping.ErrLogNotFound):
		NotFound(w, "Log not found")
	case errors.Is(err, timekeeping.ErrLeaveMarkerNotFound):
		NotFound(w, "Leave marker not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Report domain errors
	case errors.Is(err, report.ErrEmptyExport):
		NotFound(w, "No records in the requested range")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
