package domain

import "time"

// Customer represents a returning guest. PhoneNumber is stored in the
// canonical normalized format so lookups by any input format converge
// to the same record.
type Customer struct {
	ID          int64
	FullName    string
	PhoneNumber string
	Notes       *string
	CreatedBy   *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
