package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
)

const entityTypeBooking = "booking"

// Request модель запроса на отмену брони
type Request struct {
	ID     int64
	Reason *string

	// Сотрудник, выполняющий отмену; nil недопустим для ручной отмены
	ActorID *int64
}

// Response модель ответа с отмененной бронью
type Response struct {
	ID                 int64
	ReferenceNumber    string
	Status             string
	CancellationReason *string
	CancelledAt        *time.Time
	CancelledBy        *int64
}

// UseCase use case для отмены бронирования. Отмена терминальна:
// бронь остается в истории, но больше не занимает даты.
type UseCase struct {
	bookingRepo  BookingRepository
	auditRepo    AuditRepository
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		auditRepo:    auditRepo,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: id=%d", req.ID)

	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.IsCancelled() {
			return ErrAlreadyCancelled
		}

		before := *booking

		booking.Cancel(req.ActorID, req.Reason, now)
		booking.UpdatedBy = req.ActorID

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		result = booking

		if err := uc.auditRepo.Record(txCtx, entityTypeBooking, booking.ID, domain.AuditCancelled, req.ActorID, &before, booking); err != nil {
			uc.logger.Error("CancelBooking: failed to record audit: %v", err)
			return fmt.Errorf("%w: failed to record audit: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: cancelled booking id=%d reference=%s", result.ID, result.ReferenceNumber)

	uc.events.PublishAsync(notifier.EventBookingCancelled, notifier.BookingCancelledPayload{
		BookingID:       result.ID,
		UnitID:          result.UnitID,
		ReferenceNumber: result.ReferenceNumber,
		CancelledAt:     result.CancelledAt,
		Reason:          result.CancellationReason,
		CancelledBy:     result.CancelledBy,
	})

	return &Response{
		ID:                 result.ID,
		ReferenceNumber:    result.ReferenceNumber,
		Status:             string(result.Status),
		CancellationReason: result.CancellationReason,
		CancelledAt:        result.CancelledAt,
		CancelledBy:        result.CancelledBy,
	}, nil
}
