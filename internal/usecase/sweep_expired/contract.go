package sweep_expired

import (
	"context"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListExpiredTentative(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// AuditRepository интерфейс журнала изменений
type AuditRepository interface {
	Record(ctx context.Context, entityType string, entityID int64, action domain.AuditAction, userID *int64, before, after interface{}) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishAsync(eventType notifier.EventType, payload interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SweepMetrics счетчики прогона; nil-реализация допустима через NopMetrics
type SweepMetrics interface {
	SweepRun()
	SweepFailure()
	AutoCancelled()
}

// NopMetrics заглушка, когда метрики выключены
type NopMetrics struct{}

func (NopMetrics) SweepRun()      {}
func (NopMetrics) SweepFailure()  {}
func (NopMetrics) AutoCancelled() {}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
