// Package report_occupancy отдает отчет о занятости единиц
package report_occupancy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/service/reports"
	"github.com/m04kA/RIH-BookingService/internal/service/reports/models"
)

const (
	msgInvalidFrom = "invalid from date, expected YYYY-MM-DD"
	msgInvalidTo   = "invalid to date, expected YYYY-MM-DD"
)

type ReportService interface {
	Occupancy(ctx context.Context, from, to time.Time) (*models.OccupancyReport, error)
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

// Handle GET /api/v1/reports/occupancy?from=...&to=...
// Без параметров отдает текущий месяц.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := r.URL.Query()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /reports/occupancy - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /reports/occupancy - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		to = parsed
	}

	result, err := h.service.Occupancy(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /reports/occupancy - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /reports/occupancy - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
