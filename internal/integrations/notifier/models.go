package notifier

import "time"

// EventType тип доменного события бронирования
type EventType string

const (
	EventBookingCreated   EventType = "BookingCreated"
	EventBookingUpdated   EventType = "BookingUpdated"
	EventBookingCancelled EventType = "BookingCancelled"
)

// Event конверт события, отправляемого на webhook.
// Payload зависит от типа события.
type Event struct {
	Type       EventType   `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// BookingCreatedPayload полезная нагрузка события создания брони
type BookingCreatedPayload struct {
	BookingID       int64   `json:"booking_id"`
	UnitID          int64   `json:"unit_id"`
	ReferenceNumber string  `json:"reference_number"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	PriceTotal      float64 `json:"price_total"`
}

// BookingUpdatedPayload полный снапшот брони после обновления
type BookingUpdatedPayload struct {
	BookingID       int64    `json:"booking_id"`
	UnitID          int64    `json:"unit_id"`
	ReferenceNumber string   `json:"reference_number"`
	CustomerID      *int64   `json:"customer_id,omitempty"`
	CustomerName    *string  `json:"customer_name,omitempty"`
	CustomerPhone   *string  `json:"customer_phone,omitempty"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Status          string   `json:"status"`
	PaymentStatus   string   `json:"payment_status"`
	PriceTotal      float64  `json:"price_total"`
	AmountPaid      float64  `json:"amount_paid"`
	IsNoShow        bool     `json:"is_no_show"`
}

// BookingCancelledPayload полезная нагрузка события отмены
type BookingCancelledPayload struct {
	BookingID       int64      `json:"booking_id"`
	UnitID          int64      `json:"unit_id"`
	ReferenceNumber string     `json:"reference_number"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	Reason          *string    `json:"reason,omitempty"`
	// nil = отменено системой (expiry sweep)
	CancelledBy *int64 `json:"cancelled_by,omitempty"`
}
