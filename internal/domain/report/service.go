package report

import "context"

// ReportService renders derived day records into downloadable files.
type ReportService interface {
	// ExportAttendance renders the day records in the requested range as
	// CSV or XLSX
	ExportAttendance(ctx context.Context, req AttendanceExportRequest) (ExportResult, error)
}
