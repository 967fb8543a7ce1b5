package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/customer"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	"github.com/m04kA/RIH-BookingService/internal/integrations/notifier"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

const entityTypeBooking = "booking"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	unitRepo     UnitRepository
	customerRepo CustomerRepository
	settings     SettingsProvider
	auditRepo    AuditRepository
	events       EventPublisher
	txManager    TransactionManager
	metrics      CreateMetrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	unitRepo UnitRepository,
	customerRepo CustomerRepository,
	settings SettingsProvider,
	auditRepo AuditRepository,
	events EventPublisher,
	txManager TransactionManager,
	metrics CreateMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		unitRepo:     unitRepo,
		customerRepo: customerRepo,
		settings:     settings,
		auditRepo:    auditRepo,
		events:       events,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Конфликт дат, назначение номера и вставка выполняются в одной
// сериализуемой транзакции: два конкурирующих пересекающихся запроса
// не могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: unit=%d, dates=%s..%s, status=%q",
		req.UnitID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result                   *domain.Booking
		existingCustomerDetected bool
	)

	// 2. Все операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Единица существует и активна
		unit, err := uc.unitRepo.GetByID(txCtx, req.UnitID)
		if err != nil {
			if errors.Is(err, unitRepo.ErrUnitNotFound) {
				return ErrUnitNotFound
			}
			uc.logger.Error("CreateBooking: failed to get unit id=%d: %v", req.UnitID, err)
			return fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
		}
		if !unit.IsActive() {
			return ErrUnitInactive
		}

		// 2.2. Проверка пересечения дат
		if err := uc.checkConflict(txCtx, req.UnitID, req.StartDate, req.EndDate, nil); err != nil {
			return err
		}

		// 2.3. Привязка клиента (поиск по нормализованному телефону,
		// создание при отсутствии)
		customerID, detected, err := uc.resolveCustomer(txCtx, req)
		if err != nil {
			return err
		}
		existingCustomerDetected = detected

		// 2.4. Назначение номера брони: максимум за год + 1
		lastSeq, err := uc.bookingRepo.LastReferenceSeq(txCtx, now.Year())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get last reference seq: %v", err)
			return fmt.Errorf("%w: failed to get last reference seq: %v", ErrInternal, err)
		}
		reference := domain.FormatReference(now.Year(), lastSeq+1)

		booking := &domain.Booking{
			UnitID:          req.UnitID,
			CustomerID:      customerID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   normalizedPhonePtr(req.CustomerPhone),
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			PriceTotal:      req.PriceTotal,
			AmountPaid:      req.AmountPaid,
			PaymentMethod:   req.PaymentMethod,
			DepositAmount:   req.DepositAmount,
			ReferenceNumber: reference,
			Status:          requestedStatus(req),
			Notes:           req.Notes,
			CreatedBy:       req.ActorID,
			UpdatedBy:       req.ActorID,
		}

		// 2.5. Срок жизни предварительной брони
		if booking.Status == domain.StatusTentative {
			expiry := now.Add(time.Duration(uc.settings.TentativeExpiryHours(txCtx)) * time.Hour)
			booking.TentativeExpiryAt = &expiry
		}

		// 2.6. Статус оплаты всегда выводится из сумм
		booking.RecomputePaymentStatus()

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateReference) {
				uc.logger.Warn("CreateBooking: duplicate reference %s, tx will retry", reference)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created

		// 2.7. Запись в журнал изменений в той же транзакции
		if err := uc.auditRepo.Record(txCtx, entityTypeBooking, created.ID, domain.AuditCreated, req.ActorID, nil, created); err != nil {
			uc.logger.Error("CreateBooking: failed to record audit: %v", err)
			return fmt.Errorf("%w: failed to record audit: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d reference=%s", result.ID, result.ReferenceNumber)
	uc.metrics.BookingCreated()

	// 3. Событие публикуется только после коммита
	uc.events.PublishAsync(notifier.EventBookingCreated, notifier.BookingCreatedPayload{
		BookingID:       result.ID,
		UnitID:          result.UnitID,
		ReferenceNumber: result.ReferenceNumber,
		StartDate:       result.StartDate.Format(domain.DateFormat),
		EndDate:         result.EndDate.Format(domain.DateFormat),
		Status:          string(result.Status),
		PriceTotal:      result.PriceTotal,
	})

	return &Response{
		ID:                       result.ID,
		UnitID:                   result.UnitID,
		CustomerID:               result.CustomerID,
		ReferenceNumber:          result.ReferenceNumber,
		StartDate:                result.StartDate,
		EndDate:                  result.EndDate,
		Status:                   string(result.Status),
		PaymentStatus:            string(result.PaymentStatus),
		PriceTotal:               result.PriceTotal,
		AmountPaid:               result.AmountPaid,
		TentativeExpiryAt:        result.TentativeExpiryAt,
		ExistingCustomerDetected: existingCustomerDetected,
		CreatedAt:                result.CreatedAt,
	}, nil
}

// checkConflict ищет пересекающуюся бронь; excludeID задается при обновлении
func (uc *UseCase) checkConflict(ctx context.Context, unitID int64, start, end time.Time, excludeID *int64) error {
	conflict, err := uc.bookingRepo.FindConflict(ctx, domain.ConflictFilter{
		UnitID:    unitID,
		StartDate: start,
		EndDate:   end,
		ExcludeID: excludeID,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoConflict) {
			return nil
		}
		uc.logger.Error("CreateBooking: conflict check failed: %v", err)
		return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}

	return fmt.Errorf("%w: this unit is already booked from %s to %s",
		ErrDateConflict,
		conflict.StartDate.Format(domain.DateFormat),
		conflict.EndDate.Format(domain.DateFormat))
}

// resolveCustomer возвращает идентификатор клиента для брони.
// Телефон нормализуется; существующий клиент с тем же номером
// переиспользуется, иначе создается новый.
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (*int64, bool, error) {
	if req.CustomerID != nil {
		return req.CustomerID, false, nil
	}
	if req.CustomerPhone == nil {
		// Только встроенное имя, без записи в справочнике
		return nil, false, nil
	}

	normalized := phone.Normalize(*req.CustomerPhone)

	existing, err := uc.customerRepo.FindByPhone(ctx, normalized)
	if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("CreateBooking: customer lookup failed: %v", err)
		return nil, false, fmt.Errorf("%w: customer lookup failed: %v", ErrInternal, err)
	}
	if existing != nil {
		uc.logger.Info("CreateBooking: linked existing customer id=%d by phone", existing.ID)
		return &existing.ID, true, nil
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		FullName:    *req.CustomerName,
		PhoneNumber: normalized,
		CreatedBy:   req.ActorID,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create customer: %v", err)
		return nil, false, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}
	return &created.ID, false, nil
}

func normalizedPhonePtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := phone.Normalize(*raw)
	return &normalized
}
