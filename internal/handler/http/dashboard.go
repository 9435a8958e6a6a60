package http

import (
	"log/slog"
	"net/http"

	"github.com/facekeep/timekeep-backend-go/internal/domain/dashboard"
	"github.com/facekeep/timekeep-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetSnapshot(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetSnapshot implements DashboardHandler.
func (h *DashboardHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboardService.GetSnapshot(r.Context())
	if err != nil {
		slog.Error("GetSnapshot service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}
