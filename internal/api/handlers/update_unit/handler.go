// Package update_unit обновляет единицу (шале)
package update_unit

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/units"
	"github.com/m04kA/RIH-BookingService/internal/service/units/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidUnitID      = "invalid unit ID"
	msgNotFound           = "unit not found"
)

type UnitService interface {
	Update(ctx context.Context, id int64, req *models.UpdateUnitRequest) (*models.UnitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service UnitService
	logger  Logger
}

func NewHandler(service UnitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/units/{unitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /units/{id} - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	var req models.UpdateUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /units/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), unitID, &req)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrUnitNotFound):
			h.logger.Warn("PUT /units/{id} - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, units.ErrInvalidInput):
			h.logger.Warn("PUT /units/{id} - Invalid input: unit_id=%d, %v", unitID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /units/{id} - Failed to update unit: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /units/{id} - Unit updated: unit_id=%d", unitID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
