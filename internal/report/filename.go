package report

import (
	"strings"
	"unicode"
)

// DefaultFilenameStem is used when the trip name yields nothing printable.
const DefaultFilenameStem = "Trip Tracker"

// SafeFilename derives an .xlsx filename from a trip name. Characters other than
// letters, digits, space, '-' and '_' become '_'.
func SafeFilename(tripName string) string {
	if tripName == "" {
		tripName = DefaultFilenameStem
	}
	var b strings.Builder
	for _, r := range tripName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	stem := strings.TrimSpace(b.String())
	if stem == "" {
		stem = DefaultFilenameStem
	}
	return stem + ".xlsx"
}
