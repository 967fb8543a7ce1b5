// Package whatsapp_link отдает wa.me ссылку с сообщением по брони
package whatsapp_link

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/whatsapp"
)

const (
	msgInvalidBookingID = "invalid booking ID"
	msgNotFound         = "booking not found"
	msgNoPhone          = "booking has no phone number"
)

type WhatsAppService interface {
	BuildLink(ctx context.Context, bookingID int64, lang string) (*whatsapp.LinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service WhatsAppService
	logger  Logger
}

func NewHandler(service WhatsAppService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/whatsapp-url?lang=ar|en
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/whatsapp-url - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	lang := r.URL.Query().Get("lang")

	result, err := h.service.BuildLink(r.Context(), bookingID, lang)
	if err != nil {
		switch {
		case errors.Is(err, whatsapp.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/whatsapp-url - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, whatsapp.ErrNoPhone):
			h.logger.Warn("GET /bookings/{id}/whatsapp-url - No phone: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNoPhone)

		default:
			h.logger.Error("GET /bookings/{id}/whatsapp-url - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
