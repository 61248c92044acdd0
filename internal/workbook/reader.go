// Package workbook reads CRM exports and writes the generated tracker workbook.
package workbook

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/example/trip-tracker/internal/records"
)

// Labels used in boundary error messages.
const (
	LabelAccounts = "Accounts export"
	LabelContacts = "Contacts export"
	LabelTemplate = "Template tracker"
)

// ReadTable parses an export into a table. Files named *.csv are read as CSV; anything
// else must be an .xlsx workbook, of which the first sheet is used. Fully blank rows
// are dropped.
func ReadTable(label, filename string, r io.Reader) (*records.Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(label, r)
	}
	rows, err := readSheetRows(label, r)
	if err != nil {
		return nil, err
	}
	return tableFromRows(rows), nil
}

// OpenTable reads the export at path with ReadTable.
func OpenTable(label, path string) (*records.Table, error) {
	return openWith(label, path, func(filename string, r io.Reader) (*records.Table, error) {
		return ReadTable(label, filename, r)
	})
}

// RequireColumns returns a MissingColumnsError naming every required column t lacks.
func RequireColumns(label string, t *records.Table, required ...string) error {
	if missing := t.Missing(required...); len(missing) > 0 {
		return &MissingColumnsError{Label: label, Missing: missing}
	}
	return nil
}

// LoadAccounts reads an accounts export. It must carry a Companies column.
func LoadAccounts(filename string, r io.Reader) (*records.Table, error) {
	table, err := ReadTable(LabelAccounts, filename, r)
	if err != nil {
		return nil, err
	}
	if err := RequireColumns(LabelAccounts, table, records.ColumnCompanies); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadContacts reads a contacts export. It must carry a People column.
func LoadContacts(filename string, r io.Reader) (*records.Table, error) {
	table, err := ReadTable(LabelContacts, filename, r)
	if err != nil {
		return nil, err
	}
	if err := RequireColumns(LabelContacts, table, records.ColumnPeople); err != nil {
		return nil, err
	}
	return table, nil
}

// OpenAccounts reads the accounts export at path with LoadAccounts.
func OpenAccounts(path string) (*records.Table, error) {
	return openWith(LabelAccounts, path, LoadAccounts)
}

// OpenContacts reads the contacts export at path with LoadContacts.
func OpenContacts(path string) (*records.Table, error) {
	return openWith(LabelContacts, path, LoadContacts)
}

// OpenTemplate reads the tracker template at path with LoadTemplate.
func OpenTemplate(path string) (*Template, error) {
	return openWith(LabelTemplate, path, LoadTemplate)
}

func openWith[T any](label, path string, load func(string, io.Reader) (T, error)) (T, error) {
	file, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, eris.Wrapf(err, "workbook: open %s", label)
	}
	defer file.Close()
	return load(filepath.Base(path), file)
}

// Template is a tracker template. Only its first-sheet header row is used.
type Template struct {
	Headers []string
}

// LoadTemplate reads a tracker template. It must be a readable .xlsx workbook.
func LoadTemplate(filename string, r io.Reader) (*Template, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, &ReadError{Label: LabelTemplate, Err: eris.New("workbook: template must be .xlsx")}
	}
	rows, err := readSheetRows(LabelTemplate, r)
	if err != nil {
		return nil, err
	}
	tmpl := &Template{}
	if len(rows) > 0 {
		for _, h := range rows[0] {
			tmpl.Headers = append(tmpl.Headers, strings.TrimSpace(h))
		}
	}
	return tmpl, nil
}

// HeadersOr returns the template headers, or fallback when the template is nil or has
// no non-blank header.
func (t *Template) HeadersOr(fallback []string) []string {
	if t != nil {
		for _, h := range t.Headers {
			if h != "" {
				out := make([]string, len(t.Headers))
				copy(out, t.Headers)
				return out
			}
		}
	}
	out := make([]string, len(fallback))
	copy(out, fallback)
	return out
}

func readSheetRows(label string, r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ReadError{Label: label, Err: eris.Wrap(err, "workbook: open xlsx")}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ReadError{Label: label, Err: eris.New("workbook: workbook has no sheets")}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ReadError{Label: label, Err: eris.Wrapf(err, "workbook: read sheet %q", sheet)}
	}
	return rows, nil
}

func readCSV(label string, r io.Reader) (*records.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ReadError{Label: label, Err: eris.Wrap(err, "workbook: read csv")}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *records.Table {
	if len(rows) == 0 {
		return records.NewTable(nil, nil)
	}
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		data = append(data, row)
	}
	return records.NewTable(rows[0], data)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
