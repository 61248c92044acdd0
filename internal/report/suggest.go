// Package report turns a tracker run into the human-facing pieces of the tracker:
// remediation hints, the contacts directory, the run log, and the output filename.
package report

import "strings"

type suggestion struct {
	keywords []string
	fix      string
}

// suggestions are checked in order; the first keyword hit wins.
var suggestions = []suggestion{
	{[]string{"email"}, "Add a valid email address for the primary contact in CRM (Contacts export)."},
	{[]string{"address", "location", "hq"}, "Add the meeting address / HQ address in CRM (Accounts export)."},
	{[]string{"owner"}, "Assign an account owner in CRM so meetings can be distributed."},
	{[]string{"description"}, "Add a short company description in CRM (optional)."},
	{[]string{"duplicate"}, "De-duplicate the record in CRM or confirm which record should be used."},
	{[]string{"missing", "blank"}, "Fill the missing value in CRM and re-export."},
	{[]string{"no matching contacts"}, "Ensure contacts are associated with the correct company (website/company name match) and re-export."},
}

// DefaultFix is returned when no keyword matches.
const DefaultFix = "Review the CRM export and correct the value."

// SuggestFix returns a remediation hint for an issue message, its field, and optional
// context such as the entity kind. Matching is case-insensitive over all three.
func SuggestFix(message, field, context string) string {
	blob := strings.ToLower(strings.Join([]string{message, field, context}, " "))
	for _, s := range suggestions {
		for _, keyword := range s.keywords {
			if strings.Contains(blob, keyword) {
				return s.fix
			}
		}
	}
	return DefaultFix
}
