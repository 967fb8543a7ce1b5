package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

const entityTypeBooking = "booking"

// UseCase use case для обновления бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	unitRepo     UnitRepository
	settings     SettingsProvider
	auditRepo    AuditRepository
	events       EventPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	unitRepo UnitRepository,
	settings SettingsProvider,
	auditRepo AuditRepository,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		unitRepo:     unitRepo,
		settings:     settings,
		auditRepo:    auditRepo,
		events:       events,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case обновления бронирования.
// Повторная проверка конфликта дат делается только при смене единицы
// или дат, с исключением собственного id.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d", req.ID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Отмененные и выселенные брони неизменяемы
		if booking.Status == domain.StatusCancelled || booking.Status == domain.StatusCheckedOut {
			return fmt.Errorf("%w: status is %s", ErrBookingImmutable, booking.Status)
		}

		before := *booking

		if err := uc.applyChanges(txCtx, booking, req); err != nil {
			return err
		}

		// Конфликт дат перепроверяется только при смене единицы или дат
		if booking.UnitID != before.UnitID || !booking.StartDate.Equal(before.StartDate) || !booking.EndDate.Equal(before.EndDate) {
			if err := uc.checkConflict(txCtx, booking); err != nil {
				return err
			}
		}

		if req.Status != nil {
			newStatus := domain.BookingStatus(*req.Status)
			if !booking.CanTransitionTo(newStatus) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
			}
			window := time.Duration(uc.settings.TentativeExpiryHours(txCtx)) * time.Hour
			booking.ApplyTransition(newStatus, now, window)
		}

		booking.RecomputePaymentStatus()
		booking.UpdatedBy = req.ActorID

		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}
		result = booking

		if err := uc.auditRepo.Record(txCtx, entityTypeBooking, booking.ID, domain.AuditUpdated, req.ActorID, &before, booking); err != nil {
			uc.logger.Error("UpdateBooking: failed to record audit: %v", err)
			return fmt.Errorf("%w: failed to record audit: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: updated booking id=%d status=%s", result.ID, result.Status)

	uc.events.PublishAsync(notifier.EventBookingUpdated, notifier.BookingUpdatedPayload{
		BookingID:       result.ID,
		UnitID:          result.UnitID,
		ReferenceNumber: result.ReferenceNumber,
		CustomerID:      result.CustomerID,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		StartDate:       result.StartDate.Format(domain.DateFormat),
		EndDate:         result.EndDate.Format(domain.DateFormat),
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		PriceTotal:      result.PriceTotal,
		AmountPaid:      result.AmountPaid,
		IsNoShow:        result.IsNoShow,
	})

	return &Response{
		ID:                result.ID,
		UnitID:            result.UnitID,
		CustomerID:        result.CustomerID,
		ReferenceNumber:   result.ReferenceNumber,
		StartDate:         result.StartDate,
		EndDate:           result.EndDate,
		Status:            string(result.Status),
		PaymentStatus:     string(result.PaymentStatus),
		PriceTotal:        result.PriceTotal,
		AmountPaid:        result.AmountPaid,
		TentativeExpiryAt: result.TentativeExpiryAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}

// applyChanges накладывает non-nil поля запроса на бронь
func (uc *UseCase) applyChanges(ctx context.Context, booking *domain.Booking, req *Request) error {
	if req.UnitID != nil && *req.UnitID != booking.UnitID {
		unit, err := uc.unitRepo.GetByID(ctx, *req.UnitID)
		if err != nil {
			if errors.Is(err, unitRepo.ErrUnitNotFound) {
				return ErrUnitNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get unit id=%d: %v", *req.UnitID, err)
			return fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
		}
		if !unit.IsActive() {
			return ErrUnitInactive
		}
		booking.UnitID = *req.UnitID
	}

	if req.CustomerID != nil {
		booking.CustomerID = req.CustomerID
	}
	if req.CustomerName != nil {
		booking.CustomerName = req.CustomerName
	}
	if req.CustomerPhone != nil {
		normalized := phone.Normalize(*req.CustomerPhone)
		booking.CustomerPhone = &normalized
	}
	if req.StartDate != nil {
		booking.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		booking.EndDate = *req.EndDate
	}
	if booking.EndDate.Before(booking.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if req.PriceTotal != nil {
		booking.PriceTotal = *req.PriceTotal
	}
	if req.AmountPaid != nil {
		booking.AmountPaid = *req.AmountPaid
	}
	if booking.AmountPaid > booking.PriceTotal {
		return fmt.Errorf("%w: amountPaid must not exceed priceTotal", ErrInvalidInput)
	}
	if req.PaymentMethod != nil {
		booking.PaymentMethod = req.PaymentMethod
	}
	if req.DepositAmount != nil {
		booking.DepositAmount = req.DepositAmount
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	return nil
}

func (uc *UseCase) checkConflict(ctx context.Context, booking *domain.Booking) error {
	conflict, err := uc.bookingRepo.FindConflict(ctx, domain.ConflictFilter{
		UnitID:    booking.UnitID,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		ExcludeID: &booking.ID,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoConflict) {
			return nil
		}
		uc.logger.Error("UpdateBooking: conflict check failed: %v", err)
		return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}

	return fmt.Errorf("%w: this unit is already booked from %s to %s",
		ErrDateConflict,
		conflict.StartDate.Format(domain.DateFormat),
		conflict.EndDate.Format(domain.DateFormat))
}
