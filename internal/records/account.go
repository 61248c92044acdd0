package records

// Account export column names.
const (
	ColumnCompanyID           = "Company ID"
	ColumnCompanies           = "Companies"
	ColumnWebsite             = "Website"
	ColumnAddressLine1        = "HQ Address Line 1"
	ColumnAddressLine2        = "HQ Address Line 2"
	ColumnHQCity              = "HQ City"
	ColumnIndustryGroup       = "Primary Industry Group"
	ColumnDescription         = "Description"
	ColumnPrimaryContact      = "Primary Contact"
	ColumnPrimaryContactEmail = "Primary Contact Email"
)

// UnknownID is the entity identifier used when a record carries no usable key.
const UnknownID = "(unknown)"

// Account is one row of the accounts export.
type Account struct {
	Row                 int
	CompanyID           string
	Name                string
	Website             string
	Address1            string
	Address2            string
	HQCity              string
	IndustryGroup       string
	Description         string
	PrimaryContactName  string
	PrimaryContactEmail string
}

// Ref identifies the account by CompanyID, then Name, then UnknownID.
func (a Account) Ref() string {
	if a.CompanyID != "" {
		return a.CompanyID
	}
	if a.Name != "" {
		return a.Name
	}
	return UnknownID
}

// IDOrUnknown identifies the account by CompanyID alone.
func (a Account) IDOrUnknown() string {
	if a.CompanyID != "" {
		return a.CompanyID
	}
	return UnknownID
}

// AccountTable is the typed view of an accounts export. The Has* flags record which
// optional columns the export carried, since column presence changes behavior.
type AccountTable struct {
	Accounts         []Account
	HasHQCity        bool
	HasIndustryGroup bool
	HasWebsite       bool
}

// Len returns the number of accounts.
func (t AccountTable) Len() int {
	return len(t.Accounts)
}

// AccountsFromTable converts a raw table into typed accounts, keeping source order and
// duplicates.
func AccountsFromTable(t *Table) AccountTable {
	out := AccountTable{
		Accounts:         make([]Account, 0, t.Len()),
		HasHQCity:        t.Has(ColumnHQCity),
		HasIndustryGroup: t.Has(ColumnIndustryGroup),
		HasWebsite:       t.Has(ColumnWebsite),
	}
	for row := 0; row < t.Len(); row++ {
		out.Accounts = append(out.Accounts, Account{
			Row:                 row,
			CompanyID:           t.Value(row, ColumnCompanyID),
			Name:                t.Value(row, ColumnCompanies),
			Website:             t.Value(row, ColumnWebsite),
			Address1:            t.Value(row, ColumnAddressLine1),
			Address2:            t.Value(row, ColumnAddressLine2),
			HQCity:              t.Value(row, ColumnHQCity),
			IndustryGroup:       t.Value(row, ColumnIndustryGroup),
			Description:         t.Value(row, ColumnDescription),
			PrimaryContactName:  t.Value(row, ColumnPrimaryContact),
			PrimaryContactEmail: t.Value(row, ColumnPrimaryContactEmail),
		})
	}
	return out
}
