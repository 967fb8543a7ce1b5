// Package whatsapp строит ссылки wa.me с подстановкой данных брони
// в настраиваемый шаблон сообщения.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/customer"
	settingsRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/settings"
	unitRepo "github.com/m04kA/RIH-BookingService/internal/infra/storage/unit"
	settingsSvc "github.com/m04kA/RIH-BookingService/internal/service/settings"
	"github.com/m04kA/RIH-BookingService/pkg/phone"
)

// Шаблоны по умолчанию; используются, пока админ не задал свои
const (
	defaultTemplateAR = "مرحباً {customer_name}،\nتم تسجيل حجزكم {reference} في {unit_name} من {start_date} إلى {end_date}.\nالإجمالي: {total_price} | المدفوع: {paid} | المتبقي: {remaining}"
	defaultTemplateEN = "Hello {customer_name},\nYour booking {reference} at {unit_name} from {start_date} to {end_date} is registered.\nTotal: {total_price} | Paid: {paid} | Remaining: {remaining}"
)

// BookingRepository интерфейс репозитория броней
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// UnitRepository интерфейс репозитория единиц
type UnitRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Unit, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service сервис ссылок WhatsApp
type Service struct {
	bookings  BookingRepository
	customers CustomerRepository
	units     UnitRepository
	settings  SettingsRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookings BookingRepository, customers CustomerRepository, units UnitRepository, settings SettingsRepository, logger Logger) *Service {
	return &Service{
		bookings:  bookings,
		customers: customers,
		units:     units,
		settings:  settings,
		logger:    logger,
	}
}

// LinkResponse ответ со сгенерированной ссылкой
type LinkResponse struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// BuildLink строит ссылку wa.me для брони. lang выбирает шаблон:
// "en" - английский, все остальное - арабский (основной язык).
func (s *Service) BuildLink(ctx context.Context, bookingID int64, lang string) (*LinkResponse, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("BuildLink: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: BuildLink - repository error: %v", ErrInternal, err)
	}

	name, rawPhone, err := s.resolveContact(ctx, booking)
	if err != nil {
		return nil, err
	}
	if rawPhone == "" {
		return nil, ErrNoPhone
	}

	unitName := ""
	if unit, err := s.units.GetByID(ctx, booking.UnitID); err == nil {
		unitName = unit.Name
	} else if !errors.Is(err, unitRepo.ErrUnitNotFound) {
		s.logger.Warn("BuildLink: unit lookup failed for booking id=%d: %v", bookingID, err)
	}

	message := s.fillTemplate(ctx, booking, name, rawPhone, unitName, lang)
	digits := phone.WhatsAppDigits(rawPhone)

	return &LinkResponse{
		URL:     "https://wa.me/" + digits + "?text=" + url.QueryEscape(message),
		Phone:   digits,
		Message: message,
	}, nil
}

// resolveContact возвращает имя и телефон: связанный клиент либо
// встроенные поля брони
func (s *Service) resolveContact(ctx context.Context, b *domain.Booking) (string, string, error) {
	if b.CustomerID != nil {
		customer, err := s.customers.GetByID(ctx, *b.CustomerID)
		if err != nil {
			if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
				s.logger.Error("resolveContact: customer lookup error: %v", err)
				return "", "", fmt.Errorf("%w: resolveContact - customer lookup error: %v", ErrInternal, err)
			}
		} else {
			return customer.FullName, customer.PhoneNumber, nil
		}
	}

	name, rawPhone := "", ""
	if b.CustomerName != nil {
		name = *b.CustomerName
	}
	if b.CustomerPhone != nil {
		rawPhone = *b.CustomerPhone
	}
	return name, rawPhone, nil
}

func (s *Service) fillTemplate(ctx context.Context, b *domain.Booking, name, rawPhone, unitName, lang string) string {
	template := s.template(ctx, lang)

	replacer := strings.NewReplacer(
		"{customer_name}", name,
		"{phone}", rawPhone,
		"{unit_name}", unitName,
		"{start_date}", b.StartDate.Format(domain.DateFormat),
		"{end_date}", b.EndDate.Format(domain.DateFormat),
		"{total_price}", formatAmount(b.PriceTotal),
		"{paid}", formatAmount(b.AmountPaid),
		"{remaining}", formatAmount(b.RemainingAmount()),
		"{booking_id}", strconv.FormatInt(b.ID, 10),
		"{reference}", b.ReferenceNumber,
	)
	return replacer.Replace(template)
}

func (s *Service) template(ctx context.Context, lang string) string {
	key := settingsSvc.KeyWhatsAppTemplate
	fallback := defaultTemplateAR
	if lang == "en" {
		key = settingsSvc.KeyWhatsAppTemplateEN
		fallback = defaultTemplateEN
	}

	value, err := s.settings.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
			s.logger.Warn("template: settings lookup failed for key=%q: %v", key, err)
		}
		return fallback
	}
	if value == "" {
		return fallback
	}
	return value
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
