// Package settings предоставляет типизированный доступ к настройкам
// системы, хранящимся в таблице key-value.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/settings"
)

// Ключи настроек
const (
	KeyTentativeExpiryHours = "tentative_expiry_hours"
	KeyWhatsAppTemplate     = "whatsapp_template"
	KeyWhatsAppTemplateEN   = "whatsapp_template_en"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service сервис настроек
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetAll возвращает все настройки
func (s *Service) GetAll(ctx context.Context) (map[string]string, error) {
	values, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}
	return values, nil
}

// Get возвращает значение настройки по ключу
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			return "", ErrSettingNotFound
		}
		s.logger.Error("Get: repository error for key=%q: %v", key, err)
		return "", fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return value, nil
}

// Set сохраняет значение настройки. Значения валидируются по ключу.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	if key == KeyTentativeExpiryHours {
		hours, err := strconv.Atoi(value)
		if err != nil || hours <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidInput, KeyTentativeExpiryHours, value)
		}
	}

	if err := s.repo.Set(ctx, key, value); err != nil {
		s.logger.Error("Set: repository error for key=%q: %v", key, err)
		return fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Set: setting %q updated", key)
	return nil
}

// TentativeExpiryHours возвращает окно жизни предварительной брони в часах.
// При отсутствии или порче значения используется значение по умолчанию.
func (s *Service) TentativeExpiryHours(ctx context.Context) int {
	value, err := s.repo.Get(ctx, KeyTentativeExpiryHours)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
			s.logger.Warn("TentativeExpiryHours: repository error, using default: %v", err)
		}
		return domain.DefaultTentativeExpiryHours
	}

	hours, err := strconv.Atoi(value)
	if err != nil || hours <= 0 {
		s.logger.Warn("TentativeExpiryHours: invalid stored value %q, using default", value)
		return domain.DefaultTentativeExpiryHours
	}
	return hours
}
