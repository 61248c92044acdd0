package workbook

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/example/trip-tracker/internal/records"
)

// WriteTable renders t as a single-sheet workbook named sheet, in the shape a CRM
// export has: a bold header row followed by the data rows, as-is.
func WriteTable(w io.Writer, sheet string, t *records.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return eris.Wrapf(err, "workbook: name sheet %s", sheet)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return eris.Wrap(err, "workbook: create header style")
	}

	rows := make([][]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows = append(rows, t.Row(i))
	}
	sw := newSheetWriter(f, sheet, bold)
	sw.table(Sheet{Headers: t.Columns(), Rows: rows})
	if err := sw.finish(); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrapf(err, "workbook: write %s", sheet)
	}
	return nil
}

// WriteTableFile writes t to path with WriteTable.
func WriteTableFile(path, sheet string, t *records.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "workbook: create output dir for %s", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "workbook: create %s", path)
	}
	if err := WriteTable(file, sheet, t); err != nil {
		file.Close()
		return err
	}
	return eris.Wrapf(file.Close(), "workbook: close %s", path)
}
