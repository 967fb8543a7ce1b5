package phone

import (
	"regexp"
	"strings"
)

// CountryCode is the single country code all numbers are normalized to.
// The service operates in one country; supporting more would need a
// per-customer country source.
const CountryCode = "966"

var nonDigits = regexp.MustCompile(`[^0-9]`)

// Normalize converts a phone number to the canonical +966XXXXXXXXX format.
//
// Handles the usual input variants:
//
//	0501234567     -> +966501234567
//	501234567      -> +966501234567
//	966501234567   -> +966501234567
//	+966501234567  -> +966501234567
//	00966501234567 -> +966501234567
//
// Empty input normalizes to the empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}

	// International dialling prefix.
	digits = strings.TrimPrefix(digits, "00")

	// National trunk prefix: assume a local number.
	if strings.HasPrefix(digits, "0") {
		digits = digits[1:]
	}

	if !strings.HasPrefix(digits, CountryCode) {
		digits = CountryCode + digits
	}

	return "+" + digits
}

// StripToDigits removes everything except digits. Used for partial matching.
func StripToDigits(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// SearchDigits returns the digit forms a partial phone query should match:
// the stripped digits and, for local-format input (leading 0, 9+ digits),
// the same digits without the trunk prefix. Returns nil for queries shorter
// than 4 digits.
func SearchDigits(raw string) []string {
	digits := StripToDigits(raw)
	if len(digits) < 4 {
		return nil
	}

	forms := []string{digits}
	if strings.HasPrefix(digits, "0") && len(digits) >= 9 {
		forms = append(forms, digits[1:])
	}
	return forms
}

// IsSame reports whether two numbers normalize to the same canonical form.
func IsSame(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// WhatsAppDigits converts a phone number to the bare-digit form wa.me expects
// (country code, no plus).
func WhatsAppDigits(raw string) string {
	digits := StripToDigits(raw)
	if strings.HasPrefix(digits, "0") {
		digits = CountryCode + digits[1:]
	} else if !strings.HasPrefix(digits, CountryCode) {
		digits = CountryCode + digits
	}
	return digits
}
