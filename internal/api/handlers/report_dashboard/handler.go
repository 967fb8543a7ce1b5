// Package report_dashboard отдает сводку на сегодня
package report_dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/reports/models"
)

type ReportService interface {
	TodayDashboard(ctx context.Context, now time.Time) (*models.TodayDashboard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/today-dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.TodayDashboard(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("GET /reports/today-dashboard - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
