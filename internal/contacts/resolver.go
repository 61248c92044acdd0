// Package contacts resolves the primary contact for each selected account.
package contacts

import (
	"github.com/example/trip-tracker/internal/issues"
	"github.com/example/trip-tracker/internal/records"
)

// Field is the issue field every resolver warning is reported under.
const Field = "Primary Contact Email"

// Resolver warning messages.
const (
	MsgNoContactsExport = "Contacts export not provided; primary contact left blank."
	MsgMissingColumns   = "Contacts export missing expected columns; primary contact left blank."
	MsgNoMatches        = "No matching contacts found; primary contact left blank."
	MsgNoEmail          = "Matching contacts exist but none have an email; primary contact left blank."
)

// Match is a resolved primary contact. Both fields are blank when nothing resolved.
type Match struct {
	Name  string
	Email string
}

// Resolver matches accounts against a contacts export.
type Resolver struct {
	source    records.ContactSource
	contacts  []records.Contact
	usable    bool
	byWebsite map[string][]int
	byCompany map[string][]int
}

// NewResolver indexes src for repeated lookups.
func NewResolver(src records.ContactSource) *Resolver {
	if src == nil {
		src = records.NoContacts{}
	}
	r := &Resolver{source: src}

	provided, ok := src.(records.ProvidedContacts)
	if !ok {
		return r
	}
	table := provided.Table
	r.usable = table.HasName && table.HasEmail && (table.HasCompany || table.HasCompanyWebsite)
	if !r.usable {
		return r
	}

	r.contacts = table.Contacts
	r.byWebsite = make(map[string][]int)
	r.byCompany = make(map[string][]int)
	for i, contact := range table.Contacts {
		if table.HasCompanyWebsite {
			if key := records.Normalize(contact.CompanyWebsite); key != "" {
				r.byWebsite[key] = append(r.byWebsite[key], i)
			}
		}
		if table.HasCompany {
			if key := records.Normalize(contact.Company); key != "" {
				r.byCompany[key] = append(r.byCompany[key], i)
			}
		}
	}
	return r
}

// Resolve returns the primary contact for account. Every unresolved account produces
// exactly one WARNING on sink.
func (r *Resolver) Resolve(account records.Account, sink issues.Sink) Match {
	if account.PrimaryContactEmail != "" {
		return Match{Name: account.PrimaryContactName, Email: account.PrimaryContactEmail}
	}

	warn := func(message string) Match {
		if sink != nil {
			sink.Add(issues.Issue{
				Severity: issues.SeverityWarning,
				Entity:   issues.EntityAccount,
				EntityID: account.Ref(),
				Field:    Field,
				Message:  message,
			})
		}
		return Match{}
	}

	if _, none := r.source.(records.NoContacts); none {
		return warn(MsgNoContactsExport)
	}
	if !r.usable {
		return warn(MsgMissingColumns)
	}

	candidates := r.candidates(account)
	if len(candidates) == 0 {
		return warn(MsgNoMatches)
	}

	withEmail := candidates[:0:0]
	for _, idx := range candidates {
		if r.contacts[idx].Email != "" {
			withEmail = append(withEmail, idx)
		}
	}
	if len(withEmail) == 0 {
		return warn(MsgNoEmail)
	}

	if want := records.Normalize(account.PrimaryContactName); want != "" {
		for _, idx := range withEmail {
			if records.Normalize(r.contacts[idx].Name) == want {
				return Match{Name: r.contacts[idx].Name, Email: r.contacts[idx].Email}
			}
		}
	}

	first := r.contacts[withEmail[0]]
	return Match{Name: first.Name, Email: first.Email}
}

// candidates returns contact indexes in table order, matched by website first and by
// company name when no website matches.
func (r *Resolver) candidates(account records.Account) []int {
	if key := records.Normalize(account.Website); key != "" {
		if matched := r.byWebsite[key]; len(matched) > 0 {
			return matched
		}
	}
	if key := records.Normalize(account.Name); key != "" {
		return r.byCompany[key]
	}
	return nil
}
