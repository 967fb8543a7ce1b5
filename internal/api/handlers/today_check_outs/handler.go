// Package today_check_outs отдает брони с выездом сегодня
package today_check_outs

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	TodayCheckOuts(ctx context.Context, today time.Time) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

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

// Handle GET /api/v1/bookings/today-check-outs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.TodayCheckOuts(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("GET /bookings/today-check-outs - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
