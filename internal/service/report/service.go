package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/facekeep/timekeep-backend-go/internal/domain/report"
	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/export"
)

type ReportServiceImpl struct {
	timekeepingService timekeeping.TimekeepingService
}

func NewReportService(timekeepingService timekeeping.TimekeepingService) report.ReportService {
	return &ReportServiceImpl{
		timekeepingService: timekeepingService,
	}
}

var exportHeaders = []string{"Employee", "Email", "Position", "Date", "Check In", "Check Out", "Total Hours", "Status"}

func exportRow(r timekeeping.DayRecordResponse) []string {
	checkIn := ""
	if r.CheckIn != nil {
		checkIn = *r.CheckIn
	}
	checkOut := ""
	if r.CheckOut != nil {
		checkOut = *r.CheckOut
	}
	totalHours := ""
	if r.TotalHours != nil {
		totalHours = strconv.FormatFloat(*r.TotalHours, 'f', 2, 64)
	}
	return []string{r.FullName, r.Email, r.Position, r.Date, checkIn, checkOut, totalHours, r.Status}
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, req report.AttendanceExportRequest) (report.ExportResult, error) {
	if err := req.Validate(); err != nil {
		return report.ExportResult{}, err
	}

	filter := timekeeping.DayRecordFilter{
		DateFrom: &req.DateFrom,
		DateTo:   &req.DateTo,
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}

	records, err := s.timekeepingService.ListDayRecords(ctx, filter)
	if err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to list day records: %w", err)
	}
	if len(records) == 0 {
		return report.ExportResult{}, report.ErrEmptyExport
	}

	table := export.Table{
		Sheet:   "Attendance",
		Headers: exportHeaders,
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		table.Rows = append(table.Rows, exportRow(r))
	}

	baseName := fmt.Sprintf("attendance_%s_%s_%s", req.DateFrom, req.DateTo, time.Now().Format("20060102150405"))

	switch report.Format(req.Format) {
	case report.FormatXLSX:
		data, err := export.XLSX(table)
		if err != nil {
			return report.ExportResult{}, fmt.Errorf("failed to render xlsx: %w", err)
		}
		return report.ExportResult{
			FileName:    baseName + ".xlsx",
			ContentType: export.ContentTypeXLSX,
			Data:        data,
		}, nil
	default:
		data, err := export.CSV(table)
		if err != nil {
			return report.ExportResult{}, fmt.Errorf("failed to render csv: %w", err)
		}
		return report.ExportResult{
			FileName:    baseName + ".csv",
			ContentType: export.ContentTypeCSV,
			Data:        data,
		}, nil
	}
}
