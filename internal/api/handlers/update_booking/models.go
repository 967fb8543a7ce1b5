package update_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	updateBooking "github.com/m04kA/RIH-BookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP модель запроса; отсутствующие поля не меняются
type UpdateBookingRequest struct {
	UnitID        *int64  `json:"unitId,omitempty"`
	CustomerID    *int64  `json:"customerId,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`

	PriceTotal    *float64 `json:"priceTotal,omitempty"`
	AmountPaid    *float64 `json:"amountPaid,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	DepositAmount *float64 `json:"depositAmount,omitempty"`

	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(id int64, actorID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		ID:            id,
		UnitID:        r.UnitID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		PriceTotal:    r.PriceTotal,
		AmountPaid:    r.AmountPaid,
		PaymentMethod: r.PaymentMethod,
		DepositAmount: r.DepositAmount,
		Status:        r.Status,
		Notes:         r.Notes,
		ActorID:       &actorID,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}
	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	return req, nil
}

// UpdateBookingResponse HTTP модель ответа
type UpdateBookingResponse struct {
	ID                int64      `json:"id"`
	UnitID            int64      `json:"unitId"`
	CustomerID        *int64     `json:"customerId,omitempty"`
	ReferenceNumber   string     `json:"referenceNumber"`
	StartDate         string     `json:"startDate"`
	EndDate           string     `json:"endDate"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"paymentStatus"`
	PriceTotal        float64    `json:"priceTotal"`
	AmountPaid        float64    `json:"amountPaid"`
	TentativeExpiryAt *time.Time `json:"tentativeExpiryAt,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует модель use case в HTTP ответ
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		ID:                resp.ID,
		UnitID:            resp.UnitID,
		CustomerID:        resp.CustomerID,
		ReferenceNumber:   resp.ReferenceNumber,
		StartDate:         resp.StartDate.Format(domain.DateFormat),
		EndDate:           resp.EndDate.Format(domain.DateFormat),
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		PriceTotal:        resp.PriceTotal,
		AmountPaid:        resp.AmountPaid,
		TentativeExpiryAt: resp.TentativeExpiryAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
