// Package report_agent_activity отдает отчет по активности агентов за период
package report_agent_activity

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/service/reports"
	"github.com/m04kA/RIH-BookingService/internal/service/reports/models"
)

const (
	msgInvalidFrom    = "invalid from date, expected YYYY-MM-DD"
	msgInvalidTo      = "invalid to date, expected YYYY-MM-DD"
	msgInvalidAgentID = "invalid agent_id, expected integer"
)

type ReportService interface {
	AgentActivity(ctx context.Context, from, to time.Time, agentID *int64) (*models.AgentActivityReport, error)
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

// Handle GET /api/v1/reports/agent-activity?from=...&to=...&agent_id=...
// Без параметров отдает текущий месяц по всем агентам.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, to, err := parsePeriod(r)
	if err != nil {
		h.logger.Warn("GET /reports/agent-activity - %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	var agentID *int64
	if raw := r.URL.Query().Get("agent_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /reports/agent-activity - Invalid agent_id: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidAgentID)
			return
		}
		agentID = &parsed
	}

	result, err := h.service.AgentActivity(r.Context(), from, to, agentID)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /reports/agent-activity - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /reports/agent-activity - Failed: %v", err)
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
