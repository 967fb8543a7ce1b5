package update_booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/api/middleware"
	updateBooking "github.com/m04kA/RIH-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking ID"
	msgMissingUserID      = "missing user ID"
	msgNotFound           = "booking not found"
	msgImmutable          = "booking can no longer be modified"
	msgInvalidTransition  = "invalid status transition"
	msgUnitNotFound       = "unit not found"
	msgUnitInactive       = "unit is inactive"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actorID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrBookingImmutable):
			h.logger.Warn("PUT /bookings/{id} - Booking immutable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgImmutable)

		case errors.Is(err, updateBooking.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id} - Invalid transition: booking_id=%d, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, updateBooking.ErrDateConflict):
			h.logger.Warn("PUT /bookings/{id} - Date conflict: booking_id=%d", bookingID)
			handlers.RespondConflict(w, conflictMessage(err))

		case errors.Is(err, updateBooking.ErrUnitNotFound):
			h.logger.Warn("PUT /bookings/{id} - Unit not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, updateBooking.ErrUnitInactive):
			h.logger.Warn("PUT /bookings/{id} - Unit inactive: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgUnitInactive)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated: booking_id=%d, status=%s, actor=%d",
		result.ID, result.Status, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func conflictMessage(err error) string {
	const marker = "this unit is already booked"
	if pos := strings.Index(err.Error(), marker); pos >= 0 {
		return err.Error()[pos:]
	}
	return marker
}
