// Package update_settings обновляет настройки системы
package update_settings

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/m04kA/RIH-BookingService/internal/api/handlers"
	"github.com/m04kA/RIH-BookingService/internal/service/settings"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmptySettings      = "settings object is required"
)

// UpdateSettingsRequest HTTP модель запроса
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings"`
}

type SettingsService interface {
	Set(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) (map[string]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.Settings) == 0 {
		handlers.RespondBadRequest(w, msgEmptySettings)
		return
	}

	// Ключи пишутся в отсортированном порядке, чтобы частичный отказ
	// был детерминированным
	keys := make([]string, 0, len(req.Settings))
	for key := range req.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := h.service.Set(r.Context(), key, req.Settings[key]); err != nil {
			switch {
			case errors.Is(err, settings.ErrInvalidInput):
				h.logger.Warn("PUT /settings - Invalid value for %q: %v", key, err)
				handlers.RespondBadRequest(w, err.Error())

			default:
				h.logger.Error("PUT /settings - Failed to set %q: %v", key, err)
				handlers.RespondInternalError(w)
			}
			return
		}
	}

	values, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("PUT /settings - Failed to reload settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /settings - Updated %d setting(s)", len(req.Settings))
	handlers.RespondJSON(w, http.StatusOK, map[string]map[string]string{"settings": values})
}
