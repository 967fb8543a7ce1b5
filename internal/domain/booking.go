package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusTentative  BookingStatus = "tentative"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus is derived from (price_total, amount_paid) on every save,
// never set by callers directly
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking represents a chalet booking. Dates are inclusive day ranges;
// the overlap rule is half-open, so a checkout day may equal another
// booking's check-in day.
type Booking struct {
	ID         int64
	UnitID     int64
	CustomerID *int64

	// Inline customer fallback when no customer record is linked
	CustomerName  *string
	CustomerPhone *string

	StartDate time.Time
	EndDate   time.Time

	PriceTotal    float64
	AmountPaid    float64
	PaymentStatus PaymentStatus
	PaymentMethod *string
	DepositAmount *float64

	ReferenceNumber string
	Status          BookingStatus

	// Non-nil iff Status == StatusTentative
	TentativeExpiryAt *time.Time

	IsNoShow bool
	Notes    *string

	CancellationReason *string
	CancelledAt        *time.Time
	CancelledBy        *int64 // nil = system-initiated

	CreatedBy *int64
	UpdatedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// allowedTransitions enumerates the legal status transitions.
// checked_out and cancelled are terminal. confirmed -> tentative re-opens
// a booking as a fresh hold.
var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusTentative: {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusCheckedIn: true, StatusCancelled: true, StatusTentative: true},
	StatusCheckedIn: {StatusCheckedOut: true, StatusCancelled: true},
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTentative returns true if the booking is a provisional hold
func (b *Booking) IsTentative() bool {
	return b.Status == StatusTentative
}

// IsExpired returns true if the booking is a tentative hold past its expiry
func (b *Booking) IsExpired(now time.Time) bool {
	return b.IsTentative() &&
		b.TentativeExpiryAt != nil &&
		!b.TentativeExpiryAt.After(now)
}

// RemainingAmount returns the outstanding balance
func (b *Booking) RemainingAmount() float64 {
	return b.PriceTotal - b.AmountPaid
}

// RecomputePaymentStatus derives the payment status from the amounts.
// Called unconditionally on every persist.
func (b *Booking) RecomputePaymentStatus() {
	switch {
	case b.AmountPaid >= b.PriceTotal:
		b.PaymentStatus = PaymentPaid
	case b.AmountPaid > 0:
		b.PaymentStatus = PaymentPartial
	default:
		b.PaymentStatus = PaymentUnpaid
	}
}

// CanTransitionTo reports whether changing to newStatus is a legal
// lifecycle transition. Keeping the current status is always legal for
// non-terminal states; cancelled and checked_out accept no changes.
func (b *Booking) CanTransitionTo(newStatus BookingStatus) bool {
	if b.Status == StatusCancelled || b.Status == StatusCheckedOut {
		return false
	}
	if newStatus == b.Status {
		return true
	}
	return allowedTransitions[b.Status][newStatus]
}

// ApplyTransition changes the status and keeps the tentative expiry
// consistent: confirming clears it, re-opening to tentative computes a
// fresh one, any non-tentative target drops it.
func (b *Booking) ApplyTransition(newStatus BookingStatus, now time.Time, expiryWindow time.Duration) {
	if newStatus == StatusTentative && b.Status != StatusTentative {
		expiry := now.Add(expiryWindow)
		b.TentativeExpiryAt = &expiry
	} else if newStatus != StatusTentative {
		b.TentativeExpiryAt = nil
	}
	b.Status = newStatus
}

// Cancel marks the booking cancelled. A nil actor means the cancellation
// was system-initiated (expiry sweep).
func (b *Booking) Cancel(actor *int64, reason *string, now time.Time) {
	b.Status = StatusCancelled
	b.TentativeExpiryAt = nil
	b.CancellationReason = reason
	b.CancelledAt = &now
	b.CancelledBy = actor
}

// Overlaps reports whether the booking's date range overlaps [start, end]
// under the half-open rule: strict inequalities, so ranges that only share
// a boundary day do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return RangesOverlap(b.StartDate, b.EndDate, start, end)
}

// RangesOverlap is the conflict predicate for two inclusive date ranges:
// aStart < bEnd AND aEnd > bStart. Sharing a single boundary day
// (checkout == next check-in) is not an overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConflictFilter parameters for the conflicting-bookings scan
type ConflictFilter struct {
	UnitID    int64
	StartDate time.Time
	EndDate   time.Time
	ExcludeID *int64 // set on update so a booking never conflicts with itself
}

// CalendarFilter parameters for the calendar listing
type CalendarFilter struct {
	From   time.Time
	To     time.Time
	UnitID *int64
	Status *BookingStatus
}
