package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/RIH-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgUnitNotFound       = "unit not found"
	msgUnitInactive       = "unit is inactive"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDateConflict):
			h.logger.Warn("POST /bookings - Date conflict: unit_id=%d, %s..%s", req.UnitID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, conflictMessage(err))

		case errors.Is(err, createBooking.ErrUnitNotFound):
			h.logger.Warn("POST /bookings - Unit not found: unit_id=%d", req.UnitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, createBooking.ErrUnitInactive):
			h.logger.Warn("POST /bookings - Unit inactive: unit_id=%d", req.UnitID)
			handlers.RespondBadRequest(w, msgUnitInactive)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: unit_id=%d, error=%v", req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, reference=%s, actor=%d",
		result.ID, result.ReferenceNumber, actorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// conflictMessage отдает клиенту текст конфликта без префикса пакета
func conflictMessage(err error) string {
	const marker = "this unit is already booked"
	if pos := strings.Index(err.Error(), marker); pos >= 0 {
		return err.Error()[pos:]
	}
	return marker
}
