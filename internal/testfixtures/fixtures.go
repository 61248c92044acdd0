package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/trip"
)

var (
	accountCounter uint64
	contactCounter uint64
)

var referenceTime = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// TripStart is the first day of the default fixture trip, a Monday two days after
// ReferenceTime.
func TripStart() time.Time {
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
}

// ----------------------------- Account fixtures -----------------------------

// AccountFixture is one row of an accounts export.
type AccountFixture struct {
	CompanyID           string
	Name                string
	Website             string
	Address1            string
	Address2            string
	HQCity              string
	IndustryGroup       string
	Description         string
	PrimaryContact      string
	PrimaryContactEmail string
}

// AccountOption configures the generated account fixture.
type AccountOption func(*AccountFixture)

// NewAccountFixture returns a complete Riyadh account with optional overrides.
func NewAccountFixture(opts ...AccountOption) AccountFixture {
	idx := atomic.AddUint64(&accountCounter, 1)
	fixture := AccountFixture{
		CompanyID:     fmt.Sprintf("ACC-%03d", idx),
		Name:          fmt.Sprintf("Account %03d", idx),
		Website:       fmt.Sprintf("https://account%03d.example.com", idx),
		Address1:      fmt.Sprintf("%d King Fahd Rd", idx),
		HQCity:        "Riyadh",
		IndustryGroup: "Technology",
		Description:   fmt.Sprintf("Fixture account %03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCompanyID overrides the account identifier.
func WithCompanyID(id string) AccountOption {
	return func(f *AccountFixture) { f.CompanyID = id }
}

// WithAccountName overrides the account name.
func WithAccountName(name string) AccountOption {
	return func(f *AccountFixture) { f.Name = name }
}

// WithWebsite overrides the account website.
func WithWebsite(website string) AccountOption {
	return func(f *AccountFixture) { f.Website = website }
}

// WithAddress overrides both HQ address lines.
func WithAddress(line1, line2 string) AccountOption {
	return func(f *AccountFixture) {
		f.Address1 = line1
		f.Address2 = line2
	}
}

// WithHQCity overrides the HQ city.
func WithHQCity(city string) AccountOption {
	return func(f *AccountFixture) { f.HQCity = city }
}

// WithIndustry overrides the industry group.
func WithIndustry(group string) AccountOption {
	return func(f *AccountFixture) { f.IndustryGroup = group }
}

// WithPrimaryContact sets the account's own primary contact.
func WithPrimaryContact(name, email string) AccountOption {
	return func(f *AccountFixture) {
		f.PrimaryContact = name
		f.PrimaryContactEmail = email
	}
}

// AccountsTable materialises fixtures as a full accounts export.
func AccountsTable(fixtures ...AccountFixture) *records.Table {
	columns := []string{
		records.ColumnCompanyID,
		records.ColumnCompanies,
		records.ColumnWebsite,
		records.ColumnAddressLine1,
		records.ColumnAddressLine2,
		records.ColumnHQCity,
		records.ColumnIndustryGroup,
		records.ColumnDescription,
		records.ColumnPrimaryContact,
		records.ColumnPrimaryContactEmail,
	}
	rows := make([][]string, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, []string{
			f.CompanyID, f.Name, f.Website, f.Address1, f.Address2,
			f.HQCity, f.IndustryGroup, f.Description, f.PrimaryContact, f.PrimaryContactEmail,
		})
	}
	return records.NewTable(columns, rows)
}

// Accounts materialises fixtures as a typed account table.
func Accounts(fixtures ...AccountFixture) records.AccountTable {
	return records.AccountsFromTable(AccountsTable(fixtures...))
}

// ManyAccounts returns n default account fixtures.
func ManyAccounts(n int, opts ...AccountOption) []AccountFixture {
	out := make([]AccountFixture, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewAccountFixture(opts...))
	}
	return out
}

// DropColumns returns a copy of t without the named columns.
func DropColumns(t *records.Table, drop ...string) *records.Table {
	skip := make(map[string]bool, len(drop))
	for _, c := range drop {
		skip[c] = true
	}
	var keep []int
	var columns []string
	for i, c := range t.Columns() {
		if !skip[c] {
			keep = append(keep, i)
			columns = append(columns, c)
		}
	}
	rows := make([][]string, 0, t.Len())
	for r := 0; r < t.Len(); r++ {
		src := t.Row(r)
		row := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(src) {
				row = append(row, src[i])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return records.NewTable(columns, rows)
}

// ----------------------------- Contact fixtures -----------------------------

// ContactFixture is one row of a contacts export.
type ContactFixture struct {
	Name           string
	Email          string
	Company        string
	CompanyWebsite string
	Position       string
}

// ContactOption configures the generated contact fixture.
type ContactOption func(*ContactFixture)

// NewContactFixture returns a contact with a generated name and email and no company link.
func NewContactFixture(opts ...ContactOption) ContactFixture {
	idx := atomic.AddUint64(&contactCounter, 1)
	fixture := ContactFixture{
		Name:     fmt.Sprintf("Contact %03d", idx),
		Email:    fmt.Sprintf("contact%03d@example.com", idx),
		Position: "Director",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithContactName overrides the contact name.
func WithContactName(name string) ContactOption {
	return func(f *ContactFixture) { f.Name = name }
}

// WithContactEmail overrides the contact email.
func WithContactEmail(email string) ContactOption {
	return func(f *ContactFixture) { f.Email = email }
}

// AtCompany links the contact to an account by name.
func AtCompany(name string) ContactOption {
	return func(f *ContactFixture) { f.Company = name }
}

// AtWebsite links the contact to an account by website.
func AtWebsite(website string) ContactOption {
	return func(f *ContactFixture) { f.CompanyWebsite = website }
}

// ContactsTable materialises fixtures as a contacts export.
func ContactsTable(fixtures ...ContactFixture) *records.Table {
	columns := []string{
		records.ColumnPeople,
		records.ColumnEmail,
		records.ColumnPrimaryCompany,
		records.ColumnPrimaryCompanyWebsite,
		records.ColumnPrimaryPosition,
	}
	rows := make([][]string, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, []string{f.Name, f.Email, f.Company, f.CompanyWebsite, f.Position})
	}
	return records.NewTable(columns, rows)
}

// Contacts materialises fixtures as a contact source.
func Contacts(fixtures ...ContactFixture) records.ContactSource {
	return records.ContactSourceFrom(ContactsTable(fixtures...))
}

// ----------------------------- Trip fixtures -----------------------------

// TripOption configures trip parameters.
type TripOption func(*trip.Params)

// NewTripParams returns a two-day Riyadh trip with 12 meetings and two owners.
func NewTripParams(opts ...TripOption) trip.Params {
	params := trip.Params{
		Name:     "Riyadh Trip",
		Start:    TripStart(),
		End:      TripStart().AddDate(0, 0, 1),
		Meetings: trip.DefaultMeetings,
		City:     trip.DefaultCity,
		Owners:   trip.DefaultOwners(),
		Seed:     trip.DefaultSeed,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return params
}

// WithDays sets the trip length in days, starting at TripStart.
func WithDays(days int) TripOption {
	return func(p *trip.Params) { p.End = p.Start.AddDate(0, 0, days-1) }
}

// WithMeetings sets the target meeting count.
func WithMeetings(n int) TripOption {
	return func(p *trip.Params) { p.Meetings = n }
}

// WithCity sets the trip city.
func WithCity(city string) TripOption {
	return func(p *trip.Params) { p.City = city }
}

// WithOwners sets the owner list.
func WithOwners(owners ...string) TripOption {
	return func(p *trip.Params) { p.Owners = owners }
}

// WithSeed sets the random seed.
func WithSeed(seed int64) TripOption {
	return func(p *trip.Params) { p.Seed = seed }
}

// WithTripName sets the trip name.
func WithTripName(name string) TripOption {
	return func(p *trip.Params) { p.Name = name }
}

// NewTrip builds a validated trip configuration and panics if the options make it
// invalid.
func NewTrip(opts ...TripOption) trip.Config {
	cfg, err := trip.New(NewTripParams(opts...))
	if err != nil {
		panic(fmt.Sprintf("testfixtures: invalid trip: %v", err))
	}
	return cfg
}
