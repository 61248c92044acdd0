package sampledata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trip-tracker/internal/records"
)

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	a := Generate(Options{Accounts: 10, Seed: 7})
	b := Generate(Options{Accounts: 10, Seed: 7})
	require.Equal(t, 10, a.Accounts.Len())
	for i := 0; i < a.Accounts.Len(); i++ {
		assert.Equal(t, a.Accounts.Row(i), b.Accounts.Row(i))
	}
	require.Equal(t, a.Contacts.Len(), b.Contacts.Len())
}

func TestGenerate_Shape(t *testing.T) {
	t.Parallel()

	exports := Generate(Options{Accounts: 5, ContactsPerAccount: 3, GapRate: 0})
	assert.Equal(t, AccountColumns(), exports.Accounts.Columns())
	assert.Equal(t, ContactColumns(), exports.Contacts.Columns())
	assert.Equal(t, 15, exports.Contacts.Len())

	accounts := records.AccountsFromTable(exports.Accounts)
	for i, acc := range accounts.Accounts {
		assert.NotEmpty(t, acc.Name, "row %d", i)
		assert.NotEmpty(t, acc.Address1, "row %d", i)
		assert.Contains(t, DefaultCities(), acc.HQCity)
		assert.Contains(t, Industries(), acc.IndustryGroup)
	}
}

func TestGenerate_NoContacts(t *testing.T) {
	t.Parallel()

	exports := Generate(Options{Accounts: 3, ContactsPerAccount: -1})
	assert.Equal(t, 0, exports.Contacts.Len())
	assert.IsType(t, records.NoContacts{}, records.ContactSourceFrom(exports.Contacts))
}

func TestDomainFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acmeco.example.com", domainFor("Acme & Co.", 0))
	assert.Equal(t, "account3.example.com", domainFor("!!!", 2))
	assert.Equal(t, "jane.doe@acme.example.com", emailFor(" Jane  Doe ", "acme.example.com"))
}
