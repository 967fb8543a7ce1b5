// Package list_customers ищет клиентов по имени или телефону
package list_customers

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/customers"
	"github.com/m04kA/RIH-BookingService/internal/service/customers/models"
)

const msgMissingQuery = "query parameter q is required"

type CustomerService interface {
	Search(ctx context.Context, term string) (*models.CustomerListResponse, error)
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

// Handle GET /api/v1/customers?q=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	result, err := h.service.Search(r.Context(), term)
	if err != nil {
		switch {
		case errors.Is(err, customers.ErrInvalidInput):
			h.logger.Warn("GET /customers - Missing query")
			handlers.RespondBadRequest(w, msgMissingQuery)

		default:
			h.logger.Error("GET /customers - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
