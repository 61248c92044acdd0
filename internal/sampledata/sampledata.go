// Package sampledata fabricates CRM-shaped accounts and contacts exports for demos
// and tests. Output is deterministic for a given seed and deliberately imperfect:
// some rows lack addresses, emails, or names so every issue path gets exercised.
package sampledata

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/trip"
)

// Defaults used when Options leaves a field unset.
const (
	DefaultAccounts           = 40
	DefaultContactsPerAccount = 2
	DefaultGapRate            = 0.15
)

// DefaultCities returns the HQ cities accounts are spread across.
func DefaultCities() []string {
	return []string{"Riyadh", "Jeddah", "Dammam", "Dubai", "Abu Dhabi"}
}

// Industries returns the industry group vocabulary.
func Industries() []string {
	return []string{
		"Technology",
		"Energy",
		"Financial Services",
		"Healthcare",
		"Logistics",
		"Real Estate",
		"Retail",
	}
}

// Options controls how much data Generate fabricates.
type Options struct {
	Accounts           int
	ContactsPerAccount int
	Cities             []string
	// GapRate is the probability that an optional field is left blank.
	GapRate float64
	Seed    int64
}

func (o Options) withDefaults() Options {
	if o.Accounts <= 0 {
		o.Accounts = DefaultAccounts
	}
	if o.ContactsPerAccount < 0 {
		o.ContactsPerAccount = 0
	} else if o.ContactsPerAccount == 0 {
		o.ContactsPerAccount = DefaultContactsPerAccount
	}
	if len(o.Cities) == 0 {
		o.Cities = DefaultCities()
	}
	if o.GapRate < 0 || o.GapRate > 1 {
		o.GapRate = DefaultGapRate
	}
	// gofakeit treats seed 0 as "seed from crypto/rand".
	if o.Seed == 0 {
		o.Seed = trip.DefaultSeed
	}
	return o
}

// Exports is a matched pair of fabricated CRM exports.
type Exports struct {
	Accounts *records.Table
	Contacts *records.Table
}

// AccountColumns returns the accounts export header row.
func AccountColumns() []string {
	return []string{
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
}

// ContactColumns returns the contacts export header row.
func ContactColumns() []string {
	return []string{
		records.ColumnPeople,
		records.ColumnEmail,
		records.ColumnPhone,
		records.ColumnPrimaryPosition,
		records.ColumnPrimaryCompany,
		records.ColumnPrimaryCompanyWebsite,
		records.ColumnPrimaryCompanyType,
		records.ColumnCity,
		records.ColumnCountry,
		records.ColumnLinkedIn,
	}
}

type company struct {
	id      string
	name    string
	website string
	city    string
}

// Generate fabricates accounts and contacts. Contacts point at their company by name,
// by website, or both, so the contact cascade meets every path.
func Generate(opts Options) Exports {
	opts = opts.withDefaults()
	faker := gofakeit.New(opts.Seed)

	companies := make([]company, 0, opts.Accounts)
	accountRows := make([][]string, 0, opts.Accounts)
	for i := 0; i < opts.Accounts; i++ {
		name := faker.Company()
		domain := domainFor(name, i)
		c := company{
			id:      fmt.Sprintf("ACC-%04d", i+1),
			name:    name,
			website: "https://www." + domain,
			city:    faker.RandomString(opts.Cities),
		}
		companies = append(companies, c)

		contactName := faker.Name()
		contactEmail := emailFor(contactName, domain)
		row := []string{
			c.id,
			c.name,
			c.website,
			faker.Street(),
			fmt.Sprintf("Floor %d", faker.Number(1, 40)),
			c.city,
			faker.RandomString(Industries()),
			faker.Sentence(12),
			contactName,
			contactEmail,
		}
		blankSome(faker, opts.GapRate, row, 2, 3, 4, 6, 8, 9)
		// Rare BLOCKER: an account without a name.
		if faker.Float64() < opts.GapRate/5 {
			row[1] = ""
		}
		accountRows = append(accountRows, row)
	}

	contactRows := make([][]string, 0, opts.Accounts*opts.ContactsPerAccount)
	for _, c := range companies {
		for j := 0; j < opts.ContactsPerAccount; j++ {
			name := faker.Name()
			domain := strings.TrimPrefix(c.website, "https://www.")
			row := []string{
				name,
				emailFor(name, domain),
				faker.Phone(),
				faker.JobTitle(),
				c.name,
				c.website,
				faker.RandomString([]string{"Customer", "Prospect", "Partner"}),
				c.city,
				"Saudi Arabia",
				"https://www.linkedin.com/in/" + faker.Username(),
			}
			switch faker.Number(0, 3) {
			case 0:
				row[4] = ""
			case 1:
				row[5] = ""
			}
			blankSome(faker, opts.GapRate, row, 1, 2, 9)
			contactRows = append(contactRows, row)
		}
	}

	return Exports{
		Accounts: records.NewTable(AccountColumns(), accountRows),
		Contacts: records.NewTable(ContactColumns(), contactRows),
	}
}

func blankSome(faker *gofakeit.Faker, rate float64, row []string, columns ...int) {
	for _, col := range columns {
		if faker.Float64() < rate {
			row[col] = ""
		}
	}
}

func domainFor(name string, i int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("account%d.example.com", i+1)
	}
	return b.String() + ".example.com"
}

func emailFor(name, domain string) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), "."))
	return local + "@" + domain
}
