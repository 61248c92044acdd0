package report

import "github.com/example/trip-tracker/internal/records"

// DirectoryColumns are the contact columns carried into the contacts directory, in
// order. Columns missing from the export are skipped.
var DirectoryColumns = []string{
	records.ColumnPeople,
	records.ColumnEmail,
	records.ColumnPhone,
	records.ColumnPrimaryPosition,
	records.ColumnPrimaryCompany,
	records.ColumnPrimaryCompanyType,
	records.ColumnCity,
	records.ColumnCountry,
	records.ColumnLinkedIn,
}

// Directory is the contacts directory sheet content.
type Directory struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of contacts in the directory.
func (d Directory) Len() int {
	return len(d.Rows)
}

// ContactsDirectory selects the contacts associated with the meetings' accounts.
//
// A contact is included when its Primary Company equals a meeting account name, or its
// Primary Company Website equals the website of any loaded account carrying one of
// those names. When the export has neither company column every contact is included.
func ContactsDirectory(accounts records.AccountTable, source records.ContactSource, meetingNames []string) Directory {
	provided, ok := source.(records.ProvidedContacts)
	if !ok {
		return Directory{}
	}
	table := provided.Table

	keep := make([]records.Contact, 0, table.Len())
	if !table.HasCompany && !table.HasCompanyWebsite {
		keep = append(keep, table.Contacts...)
	} else {
		names := make(map[string]struct{}, len(meetingNames))
		for _, name := range meetingNames {
			if key := records.Normalize(name); key != "" {
				names[key] = struct{}{}
			}
		}
		websites := make(map[string]struct{})
		if accounts.HasWebsite {
			for _, account := range accounts.Accounts {
				if _, picked := names[records.Normalize(account.Name)]; !picked {
					continue
				}
				if key := records.Normalize(account.Website); key != "" {
					websites[key] = struct{}{}
				}
			}
		}

		for _, contact := range table.Contacts {
			if _, hit := names[records.Normalize(contact.Company)]; hit && table.HasCompany {
				keep = append(keep, contact)
				continue
			}
			if _, hit := websites[records.Normalize(contact.CompanyWebsite)]; hit && table.HasCompanyWebsite {
				keep = append(keep, contact)
			}
		}
	}

	raw := table.Raw()
	headers := make([]string, 0, len(DirectoryColumns))
	for _, column := range DirectoryColumns {
		if raw.Has(column) {
			headers = append(headers, column)
		}
	}

	rows := make([][]string, 0, len(keep))
	for _, contact := range keep {
		row := make([]string, 0, len(headers))
		for _, column := range headers {
			row = append(row, raw.Value(contact.Row, column))
		}
		rows = append(rows, row)
	}
	return Directory{Headers: headers, Rows: rows}
}
