package sweep_expired

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

const entityTypeBooking = "booking"

// UseCase use case автоотмены просроченных предварительных броней.
// Каждая бронь отменяется в собственной транзакции с повторной
// проверкой под блокировкой, поэтому прогон идемпотентен и
// безопасен при параллельном запуске.
type UseCase struct {
	bookingRepo  BookingRepository
	auditRepo    AuditRepository
	events       EventPublisher
	txManager    TransactionManager
	metrics      SweepMetrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	events EventPublisher,
	txManager TransactionManager,
	metrics SweepMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		auditRepo:    auditRepo,
		events:       events,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет все просроченные предварительные брони и возвращает
// количество отмененных. Ошибка по одной брони логируется и не
// прерывает прогон.
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	uc.metrics.SweepRun()

	expired, err := uc.bookingRepo.ListExpiredTentative(ctx, now)
	if err != nil {
		uc.logger.Error("SweepExpired: failed to list expired bookings: %v", err)
		return 0, fmt.Errorf("%w: failed to list expired bookings: %v", ErrInternal, err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	uc.logger.Info("SweepExpired: found %d expired tentative booking(s)", len(expired))

	cancelled := 0
	var published []*domain.Booking

	for _, candidate := range expired {
		booking, err := uc.cancelOne(ctx, candidate.ID, now)
		if err != nil {
			uc.metrics.SweepFailure()
			uc.logger.Error("SweepExpired: failed to cancel booking id=%d: %v", candidate.ID, err)
			continue
		}
		if booking == nil {
			// Кто-то успел изменить бронь между выборкой и блокировкой
			continue
		}
		cancelled++
		uc.metrics.AutoCancelled()
		published = append(published, booking)
	}

	// События только после коммита соответствующих транзакций
	for _, booking := range published {
		uc.events.PublishAsync(notifier.EventBookingCancelled, notifier.BookingCancelledPayload{
			BookingID:       booking.ID,
			UnitID:          booking.UnitID,
			ReferenceNumber: booking.ReferenceNumber,
			CancelledAt:     booking.CancelledAt,
			Reason:          booking.CancellationReason,
			CancelledBy:     nil,
		})
	}

	if cancelled > 0 {
		uc.logger.Info("SweepExpired: auto-cancelled %d booking(s)", cancelled)
	}
	return cancelled, nil
}

// cancelOne отменяет одну бронь в отдельной транзакции. Возвращает nil
// без ошибки, если бронь под блокировкой уже не подлежит отмене.
func (uc *UseCase) cancelOne(ctx context.Context, id int64, now time.Time) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		// Повторная проверка под блокировкой: бронь могла быть
		// подтверждена или отменена после выборки
		if !booking.IsExpired(now) {
			return nil
		}

		before := *booking

		booking.Cancel(nil, ptr.Ptr(domain.ExpiryCancelReason), now)

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return err
		}

		if err := uc.auditRepo.Record(txCtx, entityTypeBooking, booking.ID, domain.AuditAutoCancelled, nil, &before, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
