// Package report_cancellations отдает отчет по отменам и неявкам за период
package report_cancellations

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
	Cancellations(ctx context.Context, from, to time.Time) (*models.CancellationsReport, error)
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

// Handle GET /api/v1/reports/cancellations?from=...&to=...
// Без параметров отдает текущий месяц.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		h.logger.Warn("GET /reports/cancellations - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Cancellations(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /reports/cancellations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /reports/cancellations - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parsePeriod(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := r.URL.Query()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New(msgInvalidFrom)
		}
		from = parsed
	}
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New(msgInvalidTo)
		}
		to = parsed
	}
	return from, to, nil
}
