package workbook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/example/trip-tracker/internal/stats"
)

// Tracker sheet names, in workbook order.
const (
	SheetOverview = "Trip Overview"
	SheetSummary  = "Summary"
	SheetMeetings = "Meetings"
	SheetContacts = "Contacts Directory"
	SheetIssues   = "Data Issues"
)

// NoContactsNote fills the contacts sheet when there is nothing to list.
const NoContactsNote = "No contacts provided or no matching contacts found."

// IssueHeaders are the Data Issues column headers.
var IssueHeaders = []string{"Severity", "Entity", "Entity ID", "Field", "Message", "Suggested Fix"}

const (
	minColumnWidth = 10
	maxColumnWidth = 60
)

// Overview is the Trip Overview sheet content.
type Overview struct {
	Trip     string
	Dates    string
	City     string
	Meetings int
	RunLog   []string
}

// CountTable is one titled frequency table on the Summary sheet.
type CountTable struct {
	Title  string
	Counts []stats.Count
}

// Sheet is a header row plus data rows.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// Document is everything the tracker workbook shows.
type Document struct {
	Overview Overview
	Summary  []CountTable
	Meetings Sheet
	// StatusColumn is the 1-based Meetings column offered as a StatusOptions drop-down.
	// Zero disables the drop-down.
	StatusColumn  int
	StatusOptions []string
	Contacts      Sheet
	Issues        Sheet
}

// Write renders doc as an .xlsx workbook to w.
func Write(w io.Writer, doc Document) error {
	f, err := build(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "workbook: write tracker")
	}
	return nil
}

// WriteFile renders doc to path, creating the parent directory if needed.
func WriteFile(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "workbook: create output dir %s", dir)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "workbook: create %s", path)
	}
	if err := Write(file, doc); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return eris.Wrapf(err, "workbook: close %s", path)
	}
	return nil
}

func build(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetOverview); err != nil {
		f.Close()
		return nil, eris.Wrap(err, "workbook: rename first sheet")
	}
	for _, name := range []string{SheetSummary, SheetMeetings, SheetContacts, SheetIssues} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, eris.Wrapf(err, "workbook: create sheet %s", name)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, eris.Wrap(err, "workbook: create header style")
	}

	steps := []func(*excelize.File, int, Document) error{
		writeOverview,
		writeSummary,
		writeMeetings,
		writeContacts,
		writeIssues,
	}
	for _, step := range steps {
		if err := step(f, bold, doc); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeOverview(f *excelize.File, bold int, doc Document) error {
	sw := newSheetWriter(f, SheetOverview, bold)
	ov := doc.Overview
	sw.row(1, "Trip", ov.Trip)
	sw.row(2, "Dates", ov.Dates)
	sw.row(3, "City", ov.City)
	sw.row(4, "Meetings", ov.Meetings)
	sw.row(6, "Run Log")
	sw.bold(6, 1)
	for i, line := range ov.RunLog {
		sw.row(7+i, line)
	}
	return sw.finish()
}

func writeSummary(f *excelize.File, bold int, doc Document) error {
	sw := newSheetWriter(f, SheetSummary, bold)
	sw.row(1, "Summary")
	sw.bold(1, 1)
	r := 3
	for _, table := range doc.Summary {
		sw.row(r, table.Title)
		sw.bold(r, 1)
		r++
		sw.row(r, "Category", "Count")
		sw.bold(r, 2)
		r++
		for _, c := range table.Counts {
			sw.row(r, c.Key, c.Count)
			r++
		}
		r++
	}
	return sw.finish()
}

func writeMeetings(f *excelize.File, bold int, doc Document) error {
	sw := newSheetWriter(f, SheetMeetings, bold)
	sw.table(doc.Meetings)
	if doc.StatusColumn > 0 && len(doc.StatusOptions) > 0 && len(doc.Meetings.Rows) > 0 {
		sw.dropList(doc.StatusColumn, 2, len(doc.Meetings.Rows)+1, doc.StatusOptions)
	}
	return sw.finish()
}

func writeContacts(f *excelize.File, bold int, doc Document) error {
	sw := newSheetWriter(f, SheetContacts, bold)
	if len(doc.Contacts.Headers) == 0 || len(doc.Contacts.Rows) == 0 {
		sw.row(1, NoContactsNote)
		return sw.finish()
	}
	sw.table(doc.Contacts)
	return sw.finish()
}

func writeIssues(f *excelize.File, bold int, doc Document) error {
	sw := newSheetWriter(f, SheetIssues, bold)
	issues := doc.Issues
	if len(issues.Headers) == 0 {
		issues.Headers = IssueHeaders
	}
	sw.table(issues)
	return sw.finish()
}

// sheetWriter writes rows to one sheet, tracking column widths for auto-fit. The first
// error sticks and is returned by finish.
type sheetWriter struct {
	f      *excelize.File
	name   string
	bolder int
	widths map[int]int
	err    error
}

func newSheetWriter(f *excelize.File, name string, bold int) *sheetWriter {
	return &sheetWriter{f: f, name: name, bolder: bold, widths: make(map[int]int)}
}

func (sw *sheetWriter) row(n int, values ...any) {
	if sw.err != nil || len(values) == 0 {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		sw.err = eris.Wrapf(err, "workbook: %s row %d", sw.name, n)
		return
	}
	if err := sw.f.SetSheetRow(sw.name, cell, &values); err != nil {
		sw.err = eris.Wrapf(err, "workbook: write %s row %d", sw.name, n)
		return
	}
	for i, v := range values {
		if width := utf8.RuneCountInString(fmt.Sprint(v)); width > sw.widths[i+1] {
			sw.widths[i+1] = width
		}
	}
}

func (sw *sheetWriter) bold(n, columns int) {
	if sw.err != nil || columns <= 0 {
		return
	}
	first, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		sw.err = err
		return
	}
	last, err := excelize.CoordinatesToCellName(columns, n)
	if err != nil {
		sw.err = err
		return
	}
	if err := sw.f.SetCellStyle(sw.name, first, last, sw.bolder); err != nil {
		sw.err = eris.Wrapf(err, "workbook: style %s header", sw.name)
	}
}

// table writes a bold header row, the data rows, a frozen header pane, and an
// auto-filter over the whole range.
func (sw *sheetWriter) table(sheet Sheet) {
	header := make([]any, 0, len(sheet.Headers))
	for _, h := range sheet.Headers {
		header = append(header, h)
	}
	sw.row(1, header...)
	sw.bold(1, len(sheet.Headers))
	for i, values := range sheet.Rows {
		cells := make([]any, 0, len(values))
		for _, v := range values {
			cells = append(cells, v)
		}
		sw.row(i+2, cells...)
	}
	if sw.err != nil || len(sheet.Headers) == 0 {
		return
	}

	if err := sw.f.SetPanes(sw.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		sw.err = eris.Wrapf(err, "workbook: freeze %s header", sw.name)
		return
	}

	last, err := excelize.CoordinatesToCellName(len(sheet.Headers), len(sheet.Rows)+1)
	if err != nil {
		sw.err = err
		return
	}
	if err := sw.f.AutoFilter(sw.name, "A1:"+last, nil); err != nil {
		sw.err = eris.Wrapf(err, "workbook: filter %s", sw.name)
	}
}

func (sw *sheetWriter) dropList(column, fromRow, toRow int, options []string) {
	if sw.err != nil {
		return
	}
	first, err := excelize.CoordinatesToCellName(column, fromRow)
	if err != nil {
		sw.err = err
		return
	}
	last, err := excelize.CoordinatesToCellName(column, toRow)
	if err != nil {
		sw.err = err
		return
	}
	dv := excelize.NewDataValidation(true)
	dv.Sqref = first + ":" + last
	if err := dv.SetDropList(options); err != nil {
		sw.err = eris.Wrap(err, "workbook: status drop-down")
		return
	}
	if err := sw.f.AddDataValidation(sw.name, dv); err != nil {
		sw.err = eris.Wrap(err, "workbook: add status drop-down")
	}
}

// finish applies auto-fit widths of max(10, longest+2) capped at 60.
func (sw *sheetWriter) finish() error {
	if sw.err != nil {
		return sw.err
	}
	for col, longest := range sw.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := sw.f.SetColWidth(sw.name, name, name, float64(ColumnWidth(longest))); err != nil {
			return eris.Wrapf(err, "workbook: size %s column %s", sw.name, name)
		}
	}
	return nil
}

// ColumnWidth converts the longest cell length in a column into its width.
func ColumnWidth(longest int) int {
	return min(max(minColumnWidth, longest+2), maxColumnWidth)
}
