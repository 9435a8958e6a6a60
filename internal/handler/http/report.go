package http

import (
	"log/slog"
	"net/http"

	"github.com/facekeep/timekeep-backend-go/internal/domain/report"
	"github.com/facekeep/timekeep-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reportService: reportService,
	}
}

// ExportAttendance implements ReportHandler.
func (h *ReportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	exportReq := report.AttendanceExportRequest{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Format:   r.URL.Query().Get("format"),
		Status:   r.URL.Query().Get("status"),
	}

	result, err := h.reportService.ExportAttendance(r.Context(), exportReq)
	if err != nil {
		slog.Error("ExportAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance exported", "file", result.FileName, "bytes", len(result.Data))
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		slog.Error("ExportAttendance write error", "error", err)
	}
}
