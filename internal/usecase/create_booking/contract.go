package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindConflict(ctx context.Context, filter domain.ConflictFilter) (*domain.Booking, error)
	LastReferenceSeq(ctx context.Context, year int) (int, error)
}

// UnitRepository интерфейс репозитория единиц
type UnitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Unit, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	FindByPhone(ctx context.Context, normalizedPhone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

// SettingsProvider источник окна жизни предварительной брони
type SettingsProvider interface {
	TentativeExpiryHours(ctx context.Context) int
}

// AuditRepository интерфейс журнала изменений
type AuditRepository interface {
	Record(ctx context.Context, entityType string, entityID int64, action domain.AuditAction, userID *int64, before, after interface{}) error
}

// EventPublisher интерфейс публикации доменных событий. Публикация
// выполняется после коммита транзакции.
type EventPublisher interface {
	PublishAsync(eventType notifier.EventType, payload interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateMetrics счетчик созданных броней
type CreateMetrics interface {
	BookingCreated()
}

// NopMetrics заглушка, когда метрики выключены
type NopMetrics struct{}

func (NopMetrics) BookingCreated() {}

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
