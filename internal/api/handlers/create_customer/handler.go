// Package create_customer создает клиента в справочнике
package create_customer

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/api/middleware"
	"github.com/m04kA/RIH-BookingService/internal/service/customers"
	"github.com/m04kA/RIH-BookingService/internal/service/customers/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
	msgDuplicatePhone     = "a customer with this phone number already exists"
)

type CustomerService interface {
	Create(ctx context.Context, req *models.CreateCustomerRequest, actorID *int64) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /customers - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Create(r.Context(), &req, &actorID)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrDuplicatePhone):
			h.logger.Warn("POST /customers - Duplicate phone")
			handlers.RespondConflict(w, msgDuplicatePhone)

		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("POST /customers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /customers - Failed to create customer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers - Customer created: customer_id=%d, actor=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
