package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/RIH-BookingService/internal/domain"
	createBooking "github.com/m04kA/RIH-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP модель запроса на создание брони
type CreateBookingRequest struct {
	UnitID int64 `json:"unitId"`

	CustomerID    *int64  `json:"customerId,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	PriceTotal    float64  `json:"priceTotal"`
	AmountPaid    float64  `json:"amountPaid"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	DepositAmount *float64 `json:"depositAmount,omitempty"`

	Status string  `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64) (*createBooking.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	return &createBooking.Request{
		UnitID:        r.UnitID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		StartDate:     startDate,
		EndDate:       endDate,
		PriceTotal:    r.PriceTotal,
		AmountPaid:    r.AmountPaid,
		PaymentMethod: r.PaymentMethod,
		DepositAmount: r.DepositAmount,
		Status:        r.Status,
		Notes:         r.Notes,
		ActorID:       &actorID,
	}, nil
}

// CreateBookingResponse HTTP модель ответа
type CreateBookingResponse struct {
	ID                       int64      `json:"id"`
	UnitID                   int64      `json:"unitId"`
	CustomerID               *int64     `json:"customerId,omitempty"`
	ReferenceNumber          string     `json:"referenceNumber"`
	StartDate                string     `json:"startDate"`
	EndDate                  string     `json:"endDate"`
	Status                   string     `json:"status"`
	PaymentStatus            string     `json:"paymentStatus"`
	PriceTotal               float64    `json:"priceTotal"`
	AmountPaid               float64    `json:"amountPaid"`
	TentativeExpiryAt        *time.Time `json:"tentativeExpiryAt,omitempty"`
	ExistingCustomerDetected bool       `json:"existingCustomerDetected"`
	CreatedAt                time.Time  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует модель use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:                       resp.ID,
		UnitID:                   resp.UnitID,
		CustomerID:               resp.CustomerID,
		ReferenceNumber:          resp.ReferenceNumber,
		StartDate:                resp.StartDate.Format(domain.DateFormat),
		EndDate:                  resp.EndDate.Format(domain.DateFormat),
		Status:                   resp.Status,
		PaymentStatus:            resp.PaymentStatus,
		PriceTotal:               resp.PriceTotal,
		AmountPaid:               resp.AmountPaid,
		TentativeExpiryAt:        resp.TentativeExpiryAt,
		ExistingCustomerDetected: resp.ExistingCustomerDetected,
		CreatedAt:                resp.CreatedAt,
	}
}
