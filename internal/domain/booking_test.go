package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/RIH-BookingService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecomputePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		paid     float64
		expected PaymentStatus
	}{
		{"nothing paid", 500, 0, PaymentUnpaid},
		{"partially paid", 500, 100, PaymentPartial},
		{"exactly paid", 500, 500, PaymentPaid},
		{"overpaid still paid", 500, 600, PaymentPaid},
		{"zero total zero paid", 0, 0, PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{PriceTotal: tt.total, AmountPaid: tt.paid}
			b.RecomputePaymentStatus()
			assert.Equal(t, tt.expected, b.PaymentStatus)
			assert.Equal(t, tt.total-tt.paid, b.RemainingAmount())
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	start := date(2026, 1, 20)
	end := date(2026, 1, 22)

	tests := []struct {
		name     string
		bStart   time.Time
		bEnd     time.Time
		overlaps bool
	}{
		{"identical range", start, end, true},
		{"contained", date(2026, 1, 20), date(2026, 1, 21), true},
		{"straddles start", date(2026, 1, 19), date(2026, 1, 21), true},
		{"straddles end", date(2026, 1, 21), date(2026, 1, 24), true},
		{"covers fully", date(2026, 1, 19), date(2026, 1, 25), true},
		{"adjacent after: checkout day equals check-in day", end, date(2026, 1, 24), false},
		{"adjacent before", date(2026, 1, 18), start, false},
		{"disjoint after", date(2026, 1, 25), date(2026, 1, 27), false},
		{"zero-length range on boundary", end, end, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, RangesOverlap(start, end, tt.bStart, tt.bEnd))
			// Overlap is symmetric
			assert.Equal(t, tt.overlaps, RangesOverlap(tt.bStart, tt.bEnd, start, end))
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusTentative, StatusConfirmed, true},
		{StatusTentative, StatusCancelled, true},
		{StatusTentative, StatusCheckedIn, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusTentative, true}, // re-open
		{StatusConfirmed, StatusCheckedOut, false},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusCheckedIn, StatusCancelled, true},
		{StatusCheckedIn, StatusTentative, false},
		{StatusCheckedOut, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusConfirmed, StatusConfirmed, true}, // no-op keeps status
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 4 * time.Hour

	t.Run("tentative to confirmed clears expiry", func(t *testing.T) {
		expiry := now.Add(window)
		b := &Booking{Status: StatusTentative, TentativeExpiryAt: &expiry}
		b.ApplyTransition(StatusConfirmed, now, window)
		assert.Equal(t, StatusConfirmed, b.Status)
		assert.Nil(t, b.TentativeExpiryAt)
	})

	t.Run("re-open to tentative computes fresh expiry", func(t *testing.T) {
		b := &Booking{Status: StatusConfirmed}
		b.ApplyTransition(StatusTentative, now, window)
		assert.Equal(t, StatusTentative, b.Status)
		if assert.NotNil(t, b.TentativeExpiryAt) {
			assert.Equal(t, now.Add(window), *b.TentativeExpiryAt)
		}
	})

	t.Run("tentative staying tentative keeps existing expiry", func(t *testing.T) {
		expiry := now.Add(time.Hour)
		b := &Booking{Status: StatusTentative, TentativeExpiryAt: &expiry}
		b.ApplyTransition(StatusTentative, now, window)
		if assert.NotNil(t, b.TentativeExpiryAt) {
			assert.Equal(t, expiry, *b.TentativeExpiryAt)
		}
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)

	t.Run("by user", func(t *testing.T) {
		b := &Booking{Status: StatusConfirmed}
		b.Cancel(ptr.Ptr(int64(7)), ptr.Ptr("guest request"), now)
		assert.Equal(t, StatusCancelled, b.Status)
		assert.Equal(t, int64(7), *b.CancelledBy)
		assert.Equal(t, "guest request", *b.CancellationReason)
		assert.Equal(t, now, *b.CancelledAt)
	})

	t.Run("by system clears expiry and leaves nil actor", func(t *testing.T) {
		b := &Booking{Status: StatusTentative, TentativeExpiryAt: &expiry}
		b.Cancel(nil, ptr.Ptr(ExpiryCancelReason), now)
		assert.Equal(t, StatusCancelled, b.Status)
		assert.Nil(t, b.CancelledBy)
		assert.Nil(t, b.TentativeExpiryAt)
	})
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, (&Booking{Status: StatusTentative, TentativeExpiryAt: &past}).IsExpired(now))
	assert.True(t, (&Booking{Status: StatusTentative, TentativeExpiryAt: &now}).IsExpired(now))
	assert.False(t, (&Booking{Status: StatusTentative, TentativeExpiryAt: &future}).IsExpired(now))
	assert.False(t, (&Booking{Status: StatusConfirmed, TentativeExpiryAt: &past}).IsExpired(now))
	assert.False(t, (&Booking{Status: StatusTentative}).IsExpired(now))
}
