package domain

import "time"

// UnitStatus active/inactive; units are soft-deactivated, never deleted
type UnitStatus string

const (
	UnitActive   UnitStatus = "active"
	UnitInactive UnitStatus = "inactive"
)

// Unit represents a rentable chalet
type Unit struct {
	ID           int64
	Name         string
	Status       UnitStatus
	DefaultPrice float64

	// Optional weekend pricing overrides (nil = use DefaultPrice)
	PriceThursday *float64
	PriceFriday   *float64
	PriceSaturday *float64

	Notes     *string
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the unit accepts bookings
func (u *Unit) IsActive() bool {
	return u.Status == UnitActive
}

// PriceForDate returns the nightly price for a date, applying the
// day-of-week override when one is set
func (u *Unit) PriceForDate(date time.Time) float64 {
	switch date.Weekday() {
	case time.Thursday:
		if u.PriceThursday != nil {
			return *u.PriceThursday
		}
	case time.Friday:
		if u.PriceFriday != nil {
			return *u.PriceFriday
		}
	case time.Saturday:
		if u.PriceSaturday != nil {
			return *u.PriceSaturday
		}
	}
	return u.DefaultPrice
}
