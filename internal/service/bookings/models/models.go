package models

import (
	"errors"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
)

// ErrUnknownStatus возвращается при неизвестном статусе в фильтре
var ErrUnknownStatus = errors.New("bookings.models: unknown booking status")

// BookingResponse модель бронирования для ответов API
type BookingResponse struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"referenceNumber"`
	UnitID          int64  `json:"unitId"`
	UnitName        string `json:"unitName,omitempty"`

	CustomerID    *int64 `json:"customerId,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	PriceTotal      float64  `json:"priceTotal"`
	AmountPaid      float64  `json:"amountPaid"`
	RemainingAmount float64  `json:"remainingAmount"`
	PaymentStatus   string   `json:"paymentStatus"`
	PaymentMethod   *string  `json:"paymentMethod,omitempty"`
	DepositAmount   *float64 `json:"depositAmount,omitempty"`

	Status            string  `json:"status"`
	TentativeExpiryAt *string `json:"tentativeExpiryAt,omitempty"`
	IsNoShow          bool    `json:"isNoShow"`
	Notes             *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`

	CreatedBy *int64 `json:"createdBy,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// CalendarRequest параметры календарной выборки
type CalendarRequest struct {
	From   time.Time
	To     time.Time
	UnitID *int64
	Status *string
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *CalendarRequest) ToDomainFilter() (domain.CalendarFilter, error) {
	filter := domain.CalendarFilter{
		From:   r.From,
		To:     r.To,
		UnitID: r.UnitID,
	}
	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		if !domain.ValidBookingStatus(status) {
			return domain.CalendarFilter{}, ErrUnknownStatus
		}
		filter.Status = &status
	}
	return filter, nil
}

// FromDomainBooking конвертирует domain бронирование в модель ответа.
// unitName пустая строка, если имя единицы не загружалось.
func FromDomainBooking(b *domain.Booking, unitName string) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		ReferenceNumber: b.ReferenceNumber,
		UnitID:          b.UnitID,
		UnitName:        unitName,
		CustomerID:      b.CustomerID,
		CustomerName:    customerDisplayName(b),
		CustomerPhone:   customerDisplayPhone(b),
		StartDate:       b.StartDate.Format(domain.DateFormat),
		EndDate:         b.EndDate.Format(domain.DateFormat),
		PriceTotal:      b.PriceTotal,
		AmountPaid:      b.AmountPaid,
		RemainingAmount: b.RemainingAmount(),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentMethod:   b.PaymentMethod,
		DepositAmount:   b.DepositAmount,
		Status:          string(b.Status),
		IsNoShow:        b.IsNoShow,
		Notes:           b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CreatedBy:          b.CreatedBy,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.TentativeExpiryAt != nil {
		s := b.TentativeExpiryAt.Format(time.RFC3339)
		resp.TentativeExpiryAt = &s
	}
	if b.CancelledAt != nil {
		s := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований, подставляя имена
// единиц из переданной карты
func FromDomainBookingList(bookings []*domain.Booking, unitNames map[int64]string) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b, unitNames[b.UnitID]))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}

func customerDisplayName(b *domain.Booking) string {
	if b.CustomerName != nil && *b.CustomerName != "" {
		return *b.CustomerName
	}
	return "Unknown"
}

func customerDisplayPhone(b *domain.Booking) string {
	if b.CustomerPhone != nil {
		return *b.CustomerPhone
	}
	return ""
}
