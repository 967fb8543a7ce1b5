package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RIH-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

const searchLimit = 50

// entityBooking имя сущности в журнале аудита
const entityBooking = "booking"

// Service read-сторона бронирований: карточка, календарь, поиск по телефону,
// заезды/выезды на сегодня, флаг no-show
type Service struct {
	bookingRepo BookingRepository
	unitRepo    UnitRepository
	auditRepo   AuditRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	unitRepo UnitRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		unitRepo:    unitRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	unitName := ""
	if unit, err := s.unitRepo.GetByID(ctx, booking.UnitID); err == nil {
		unitName = unit.Name
	}

	return models.FromDomainBooking(booking, unitName), nil
}

// ListCalendar получает бронирования, пересекающие окно [From, To]
func (s *Service) ListCalendar(ctx context.Context, req *models.CalendarRequest) (*models.BookingListResponse, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' before 'from'", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListCalendar: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListCalendar(ctx, filter)
	if err != nil {
		s.logger.Error("ListCalendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCalendar - repository error: %v", ErrInternal, err)
	}

	return s.toListResponse(ctx, bookings), nil
}

// SearchByPhone ищет бронирования по фрагменту телефона (минимум 4 цифры)
func (s *Service) SearchByPhone(ctx context.Context, rawPhone string) (*models.BookingListResponse, error) {
	if len(phone.SearchDigits(rawPhone)) == 0 {
		return nil, fmt.Errorf("%w: phone query must contain at least %d digits", ErrInvalidInput, domain.MinPhoneQueryDigits)
	}

	bookings, err := s.bookingRepo.SearchByPhone(ctx, rawPhone, searchLimit)
	if err != nil {
		s.logger.Error("SearchByPhone: repository error: %v", err)
		return nil, fmt.Errorf("%w: SearchByPhone - repository error: %v", ErrInternal, err)
	}

	return s.toListResponse(ctx, bookings), nil
}

// TodayCheckIns получает бронирования с заездом сегодня
func (s *Service) TodayCheckIns(ctx context.Context, today time.Time) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListCheckingInOn(ctx, today)
	if err != nil {
		s.logger.Error("TodayCheckIns: repository error: %v", err)
		return nil, fmt.Errorf("%w: TodayCheckIns - repository error: %v", ErrInternal, err)
	}
	return s.toListResponse(ctx, bookings), nil
}

// TodayCheckOuts получает бронирования с выездом сегодня
func (s *Service) TodayCheckOuts(ctx context.Context, today time.Time) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListCheckingOutOn(ctx, today)
	if err != nil {
		s.logger.Error("TodayCheckOuts: repository error: %v", err)
		return nil, fmt.Errorf("%w: TodayCheckOuts - repository error: %v", ErrInternal, err)
	}
	return s.toListResponse(ctx, bookings), nil
}

// MarkNoShow проставляет флаг no-show на не-отмененном бронировании.
// Флаг ортогонален статусу и не меняет жизненный цикл брони.
func (s *Service) MarkNoShow(ctx context.Context, id int64, actor *int64) (*models.BookingResponse, error) {
	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
		}

		if booking.IsCancelled() {
			return ErrBookingCancelled
		}

		before := *booking

		if err := s.bookingRepo.SetNoShow(txCtx, id, true, actor); err != nil {
			return fmt.Errorf("%w: MarkNoShow - set flag: %v", ErrInternal, err)
		}
		booking.IsNoShow = true
		booking.UpdatedBy = actor

		if err := s.auditRepo.Record(txCtx, entityBooking, id, domain.AuditNoShow, actor, &before, booking); err != nil {
			return fmt.Errorf("%w: MarkNoShow - audit: %v", ErrInternal, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrBookingCancelled) {
			s.logger.Warn("MarkNoShow: booking id=%d rejected: %v", id, err)
		} else {
			s.logger.Error("MarkNoShow: booking id=%d failed: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("MarkNoShow: booking id=%d marked as no-show", id)
	return models.FromDomainBooking(updated, ""), nil
}

// toListResponse подставляет имена единиц одной выборкой вместо
// построчной загрузки связей
func (s *Service) toListResponse(ctx context.Context, bookings []*domain.Booking) *models.BookingListResponse {
	unitNames := make(map[int64]string)
	if len(bookings) > 0 {
		units, err := s.unitRepo.List(ctx, false)
		if err != nil {
			s.logger.Warn("toListResponse: failed to load unit names: %v", err)
		} else {
			for _, u := range units {
				unitNames[u.ID] = u.Name
			}
		}
	}
	return models.FromDomainBookingList(bookings, unitNames)
}
