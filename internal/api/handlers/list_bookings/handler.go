package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/service/bookings"
	"github.com/m04kA/RIH-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidFrom   = "invalid from date, expected YYYY-MM-DD"
	msgInvalidTo     = "invalid to date, expected YYYY-MM-DD"
	msgInvalidUnitID = "invalid unitId"
	msgInvalidStatus = "unknown booking status"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?from=...&to=...&unitId=...&status=...
// Без параметров отдает текущий месяц.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var err error
	if raw := query.Get("from"); raw != "" {
		if from, err = time.Parse(domain.DateFormat, raw); err != nil {
			h.logger.Warn("GET /bookings - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
	}
	if raw := query.Get("to"); raw != "" {
		if to, err = time.Parse(domain.DateFormat, raw); err != nil {
			h.logger.Warn("GET /bookings - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
	}

	req := &models.CalendarRequest{From: from, To: to}

	if raw := query.Get("unitId"); raw != "" {
		unitID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid unitId: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)
			return
		}
		req.UnitID = &unitID
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.ListCalendar(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
