package report

import (
	"github.com/facekeep/timekeep-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ========================================
// ATTENDANCE EXPORT
// ========================================

type AttendanceExportRequest struct {
	DateFrom string `json:"date_from"` // YYYY-MM-DD, inclusive
	DateTo   string `json:"date_to"`   // YYYY-MM-DD, inclusive
	Format   string `json:"format"`    // csv or xlsx, defaults to csv
	Status   string `json:"status"`    // optional status filter
}

func (r *AttendanceExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DateFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from is required",
		})
	} else if _, valid := validator.IsValidDate(r.DateFrom); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.DateTo) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to is required",
		})
	} else if _, valid := validator.IsValidDate(r.DateTo); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}

	from, fromOK := validator.IsValidDate(r.DateFrom)
	to, toOK := validator.IsValidDate(r.DateTo)
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if r.Format == "" {
		r.Format = string(FormatCSV)
	}
	if !validator.IsInSlice(r.Format, []string{string(FormatCSV), string(FormatXLSX)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be csv or xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportResult carries the rendered file back to the handler.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}
