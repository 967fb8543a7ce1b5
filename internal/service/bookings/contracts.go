package bookings

import (
	"context"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (read-сторона + no-show)
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ListCalendar(ctx context.Context, filter domain.CalendarFilter) ([]*domain.Booking, error)
	SearchByPhone(ctx context.Context, rawPhone string, limit uint64) ([]*domain.Booking, error)
	ListCheckingInOn(ctx context.Context, day time.Time) ([]*domain.Booking, error)
	ListCheckingOutOn(ctx context.Context, day time.Time) ([]*domain.Booking, error)
	SetNoShow(ctx context.Context, id int64, noShow bool, updatedBy *int64) error
}

// UnitRepository интерфейс репозитория единиц (для подстановки имен)
type UnitRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Unit, error)
	GetByID(ctx context.Context, id int64) (*domain.Unit, error)
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Record(ctx context.Context, entityType string, entityID int64, action domain.AuditAction, userID *int64, before, after interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
