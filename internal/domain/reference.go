package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// ReferencePrefix is the fixed prefix of booking reference numbers.
// Full format: RIH-YYYY-NNNNNN, sequence reset per calendar year.
const ReferencePrefix = "RIH"

var referenceSeqRe = regexp.MustCompile(`(\d{6})$`)

// ReferenceYearPrefix returns the reference prefix for a year, e.g. "RIH-2026-"
func ReferenceYearPrefix(year int) string {
	return fmt.Sprintf("%s-%04d-", ReferencePrefix, year)
}

// FormatReference builds a full reference number, e.g. RIH-2026-000123
func FormatReference(year, seq int) string {
	return fmt.Sprintf("%s%06d", ReferenceYearPrefix(year), seq)
}

// ReferenceSequence extracts the 6-digit numeric suffix of a reference
// number. Returns false for malformed references.
func ReferenceSequence(ref string) (int, bool) {
	m := referenceSeqRe.FindStringSubmatch(ref)
	if m == nil {
		return 0, false
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return seq, true
}
