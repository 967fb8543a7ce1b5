package search_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/service/bookings"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

const msgPhoneTooShort = "phone query must contain at least 4 digits"

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

// Handle GET /api/v1/bookings/search-phone?phone=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawPhone := r.URL.Query().Get("phone")
	if len(phone.StripToDigits(rawPhone)) < domain.MinPhoneQueryDigits {
		h.logger.Warn("GET /bookings/search-phone - Query too short: %q", rawPhone)
		handlers.RespondBadRequest(w, msgPhoneTooShort)
		return
	}

	result, err := h.service.SearchByPhone(r.Context(), rawPhone)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/search-phone - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgPhoneTooShort)
			return
		}
		h.logger.Error("GET /bookings/search-phone - Search failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
