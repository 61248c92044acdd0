package records

// Contact export column names.
const (
	ColumnPeople                = "People"
	ColumnEmail                 = "Email"
	ColumnPrimaryCompany        = "Primary Company"
	ColumnPrimaryCompanyWebsite = "Primary Company Website"
	ColumnPhone                 = "Phone"
	ColumnPrimaryPosition       = "Primary Position"
	ColumnPrimaryCompanyType    = "Primary Company Type"
	ColumnCity                  = "City"
	ColumnCountry               = "Country/Territory/Region"
	ColumnLinkedIn              = "LinkedIn URL"
)

// Contact is one row of the contacts export.
type Contact struct {
	Row            int
	Name           string
	Email          string
	Company        string
	CompanyWebsite string
	Phone          string
	Position       string
	CompanyType    string
	City           string
	Country        string
	ProfileURL     string
}

// ContactTable is the typed view of a contacts export.
type ContactTable struct {
	Contacts          []Contact
	HasName           bool
	HasEmail          bool
	HasCompany        bool
	HasCompanyWebsite bool

	raw *Table
}

// Len returns the number of contacts.
func (t ContactTable) Len() int {
	return len(t.Contacts)
}

// Raw returns the table the contacts were read from.
func (t ContactTable) Raw() *Table {
	return t.raw
}

// ContactsFromTable converts a raw table into typed contacts, keeping source order.
func ContactsFromTable(t *Table) ContactTable {
	out := ContactTable{
		Contacts:          make([]Contact, 0, t.Len()),
		HasName:           t.Has(ColumnPeople),
		HasEmail:          t.Has(ColumnEmail),
		HasCompany:        t.Has(ColumnPrimaryCompany),
		HasCompanyWebsite: t.Has(ColumnPrimaryCompanyWebsite),
		raw:               t,
	}
	for row := 0; row < t.Len(); row++ {
		out.Contacts = append(out.Contacts, Contact{
			Row:            row,
			Name:           t.Value(row, ColumnPeople),
			Email:          t.Value(row, ColumnEmail),
			Company:        t.Value(row, ColumnPrimaryCompany),
			CompanyWebsite: t.Value(row, ColumnPrimaryCompanyWebsite),
			Phone:          t.Value(row, ColumnPhone),
			Position:       t.Value(row, ColumnPrimaryPosition),
			CompanyType:    t.Value(row, ColumnPrimaryCompanyType),
			City:           t.Value(row, ColumnCity),
			Country:        t.Value(row, ColumnCountry),
			ProfileURL:     t.Value(row, ColumnLinkedIn),
		})
	}
	return out
}

// ContactSource is either NoContacts or ProvidedContacts.
type ContactSource interface {
	contactSource()
}

// NoContacts marks a run without a usable contacts export.
type NoContacts struct{}

func (NoContacts) contactSource() {}

// ProvidedContacts wraps a non-empty contacts export.
type ProvidedContacts struct {
	Table ContactTable
}

func (ProvidedContacts) contactSource() {}

// ContactSourceFrom decides the contact source once at the boundary. A nil or empty
// table yields NoContacts.
func ContactSourceFrom(t *Table) ContactSource {
	if t.Len() == 0 {
		return NoContacts{}
	}
	return ProvidedContacts{Table: ContactsFromTable(t)}
}

// ContactCount returns the number of contacts carried by src.
func ContactCount(src ContactSource) int {
	if provided, ok := src.(ProvidedContacts); ok {
		return provided.Table.Len()
	}
	return 0
}
