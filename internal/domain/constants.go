package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTentativeExpiryHours is used when the tentative_expiry_hours
// setting is missing or unreadable
const DefaultTentativeExpiryHours = 4

// ExpiryCancelReason is the cancellation reason recorded by the expiry sweep
const ExpiryCancelReason = "Tentative booking expired (auto-cancelled)"

// Business validation constants
const (
	MaxCustomerNameLength       = 150
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MinPhoneQueryDigits         = 4
)

// NotCancelledStatuses are the statuses considered when scanning for
// date-range conflicts
var NotCancelledStatuses = []BookingStatus{
	StatusTentative,
	StatusConfirmed,
	StatusCheckedIn,
	StatusCheckedOut,
}

// ActiveStatuses are the statuses of bookings still occupying a unit
var ActiveStatuses = []BookingStatus{
	StatusTentative,
	StatusConfirmed,
	StatusCheckedIn,
}

// ValidBookingStatus reports whether s is a known booking status
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusTentative, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}
