package update_booking

import "time"

// Request модель запроса на обновление брони; nil-поля не меняются
type Request struct {
	ID int64

	UnitID        *int64
	CustomerID    *int64
	CustomerName  *string
	CustomerPhone *string

	StartDate *time.Time
	EndDate   *time.Time

	PriceTotal    *float64
	AmountPaid    *float64
	PaymentMethod *string
	DepositAmount *float64

	// Целевой статус жизненного цикла; проверяется на допустимость перехода
	Status *string

	Notes *string

	ActorID *int64
}

// Response модель ответа с обновленной бронью
type Response struct {
	ID                int64
	UnitID            int64
	CustomerID        *int64
	ReferenceNumber   string
	StartDate         time.Time
	EndDate           time.Time
	Status            string
	PaymentStatus     string
	PriceTotal        float64
	AmountPaid        float64
	TentativeExpiryAt *time.Time
	UpdatedAt         time.Time
}
