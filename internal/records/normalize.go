package records

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// placeholders are the spreadsheet spellings of a missing value that CRM exports emit.
var placeholders = map[string]struct{}{
	"nan":    {},
	"<na>":   {},
	"none":   {},
	"null":   {},
	"nat":    {},
	"#n/a":   {},
	"n/a":    {},
	"#na":    {},
	"-nan":   {},
	"#value": {},
}

// Clean coerces a raw cell value into a trimmed string. Missing-value placeholders
// collapse to the empty string.
func Clean(raw string) string {
	value := strings.TrimSpace(norm.NFC.String(raw))
	if value == "" {
		return ""
	}
	if _, ok := placeholders[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// Normalize collapses internal whitespace, trims, and case-folds the value.
func Normalize(raw string) string {
	value := Clean(raw)
	if value == "" {
		return ""
	}
	// Casers keep internal state, so one is built per call.
	return cases.Fold().String(strings.Join(strings.Fields(value), " "))
}

// Equal reports whether two values match ignoring case and surrounding whitespace.
// Blank values never match anything, including other blank values.
func Equal(a, b string) bool {
	na := Normalize(a)
	if na == "" {
		return false
	}
	return na == Normalize(b)
}

// ContainsFold reports whether needle occurs in haystack ignoring case. A blank needle
// never matches.
func ContainsFold(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}
