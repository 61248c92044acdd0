package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Acme  ":   "Acme",
		"nan":        "",
		"NaN":        "",
		"<NA>":       "",
		"None":       "",
		"\u00a0x\t": "x",
		"":           "",
		"Nancy":      "Nancy",
		"n/a":        "",
		"Riyadh KSA": "Riyadh KSA",
	}
	for in, want := range cases {
		assert.Equal(t, want, Clean(in), "Clean(%q)", in)
	}
}

func TestNormalizeAndEqual(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jane doe", Normalize("  Jane   DOE "))
	assert.True(t, Equal("ACME.com", " acme.com "))
	assert.True(t, Equal("Beta  Corp", "beta corp"))
	assert.False(t, Equal("", ""), "blank values must never match")
	assert.False(t, Equal("nan", "NaN"))
	assert.False(t, Equal("acme", "acme inc"))
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsFold("Riyadh, KSA", "riyadh"))
	assert.False(t, ContainsFold("Jeddah", "riyadh"))
	assert.False(t, ContainsFold("Riyadh", "  "))
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := NewTable(
		[]string{" Companies ", "Website", "Companies", ""},
		[][]string{
			{"Acme", "acme.com", "shadow", "x"},
			{"Beta"},
		},
	)

	require.Equal(t, 2, table.Len())
	assert.True(t, table.Has("Companies"))
	assert.False(t, table.Has("HQ City"))
	assert.Equal(t, "Acme", table.Value(0, "Companies"), "first duplicate header wins")
	assert.Equal(t, "", table.Value(1, "Website"), "short rows read as blank")
	assert.Equal(t, "", table.Value(5, "Companies"))
	assert.Equal(t, []string{"HQ City", "People"}, table.Missing("Companies", "HQ City", "People"))

	sub := table.Subset([]int{1})
	require.Equal(t, 1, sub.Len())
	assert.Equal(t, "Beta", sub.Value(0, "Companies"))

	var nilTable *Table
	assert.Equal(t, 0, nilTable.Len())
	assert.False(t, nilTable.Has("Companies"))
}

func TestAccountsFromTable(t *testing.T) {
	t.Parallel()

	table := NewTable(
		[]string{ColumnCompanyID, ColumnCompanies, ColumnHQCity},
		[][]string{
			{"C1", "Acme", "Riyadh"},
			{"", "Beta", "Jeddah"},
			{"", "", ""},
			{"C1", "Acme", "Riyadh"},
		},
	)

	accounts := AccountsFromTable(table)
	require.Equal(t, 4, accounts.Len(), "duplicates are kept")
	assert.True(t, accounts.HasHQCity)
	assert.False(t, accounts.HasIndustryGroup)
	assert.Equal(t, "C1", accounts.Accounts[0].Ref())
	assert.Equal(t, "Beta", accounts.Accounts[1].Ref())
	assert.Equal(t, UnknownID, accounts.Accounts[1].IDOrUnknown())
	assert.Equal(t, UnknownID, accounts.Accounts[2].Ref())
	assert.Equal(t, 3, accounts.Accounts[3].Row)
}

func TestContactSourceFrom(t *testing.T) {
	t.Parallel()

	_, isNone := ContactSourceFrom(nil).(NoContacts)
	assert.True(t, isNone)

	empty := NewTable([]string{ColumnPeople, ColumnEmail}, nil)
	_, isNone = ContactSourceFrom(empty).(NoContacts)
	assert.True(t, isNone, "empty table is treated as no contacts")

	table := NewTable(
		[]string{ColumnPeople, ColumnEmail, ColumnPrimaryCompany},
		[][]string{{"Jane", "jane@acme.com", "Acme"}},
	)
	src := ContactSourceFrom(table)
	provided, ok := src.(ProvidedContacts)
	require.True(t, ok)
	assert.True(t, provided.Table.HasName)
	assert.False(t, provided.Table.HasCompanyWebsite)
	assert.Equal(t, "jane@acme.com", provided.Table.Contacts[0].Email)
	assert.Equal(t, 1, ContactCount(src))
	assert.Equal(t, 0, ContactCount(NoContacts{}))
}
