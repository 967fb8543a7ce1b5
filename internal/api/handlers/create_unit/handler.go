// Package create_unit создает новую единицу (шале)
package create_unit

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/units"
	"github.com/m04kA/RIH-BookingService/internal/service/units/models"
)

const msgInvalidRequestBody = "invalid request body"

type UnitService interface {
	Create(ctx context.Context, req *models.CreateUnitRequest) (*models.UnitResponse, error)
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

// Handle POST /api/v1/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /units - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, units.ErrInvalidInput):
			h.logger.Warn("POST /units - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /units - Failed to create unit: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /units - Unit created: unit_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
