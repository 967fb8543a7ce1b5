package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Либо CustomerID, либо пара CustomerName/CustomerPhone: при наличии
// телефона клиент ищется по нормализованному номеру и создается при
// отсутствии.
type Request struct {
	UnitID int64

	CustomerID    *int64
	CustomerName  *string
	CustomerPhone *string

	StartDate time.Time
	EndDate   time.Time

	PriceTotal    float64
	AmountPaid    float64
	PaymentMethod *string
	DepositAmount *float64

	// tentative либо confirmed; пустое значение трактуется как tentative
	Status string

	Notes *string

	// Идентификатор сотрудника из X-User-ID
	ActorID *int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UnitID          int64
	CustomerID      *int64
	ReferenceNumber string
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	PaymentStatus   string
	PriceTotal      float64
	AmountPaid      float64

	// Не nil только для предварительных броней
	TentativeExpiryAt *time.Time

	// Признак, что клиент с таким телефоном уже существовал и был
	// привязан вместо создания нового
	ExistingCustomerDetected bool

	CreatedAt time.Time
}
