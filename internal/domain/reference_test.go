package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "RIH-2026-000001", FormatReference(2026, 1))
	assert.Equal(t, "RIH-2026-000123", FormatReference(2026, 123))
	assert.Equal(t, "RIH-2027-999999", FormatReference(2027, 999999))
}

func TestReferenceYearPrefix(t *testing.T) {
	assert.Equal(t, "RIH-2026-", ReferenceYearPrefix(2026))
}

func TestReferenceSequence(t *testing.T) {
	seq, ok := ReferenceSequence("RIH-2026-000123")
	assert.True(t, ok)
	assert.Equal(t, 123, seq)

	_, ok = ReferenceSequence("RIH-2026-12")
	assert.False(t, ok)

	_, ok = ReferenceSequence("garbage")
	assert.False(t, ok)
}

func TestUnitPriceForDate(t *testing.T) {
	weekend := 900.0
	u := &Unit{DefaultPrice: 500, PriceFriday: &weekend}

	// 2026-01-23 is a Friday, 2026-01-26 a Monday
	assert.Equal(t, 900.0, u.PriceForDate(date(2026, 1, 23)))
	assert.Equal(t, 500.0, u.PriceForDate(date(2026, 1, 26)))
	// Thursday override unset falls back to default
	assert.Equal(t, 500.0, u.PriceForDate(date(2026, 1, 22)))
}
