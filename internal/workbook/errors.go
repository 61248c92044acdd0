package workbook

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotReadable marks input that cannot be parsed as a spreadsheet export.
	ErrNotReadable = errors.New("workbook: not a readable export")
	// ErrMissingColumns marks a readable export that lacks required columns.
	ErrMissingColumns = errors.New("workbook: missing required columns")
)

// ReadError reports an input that is not a valid export.
type ReadError struct {
	Label string
	Err   error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: I couldn't read this as an Excel (.xlsx) file.", e.Label)
}

// Unwrap exposes ErrNotReadable and the parser error.
func (e *ReadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotReadable}
	}
	return []error{ErrNotReadable, e.Err}
}

// Remediation returns the steps a user can take to fix the input.
func (e *ReadError) Remediation() []string {
	return []string{
		"Upload the original CRM export as .xlsx (or a .csv saved from it)",
		"Don't upload a PDF or a spreadsheet that isn't the export",
		"If the file is open in Excel, close it and try again",
	}
}

// MissingColumnsError reports an export that parsed but lacks required columns.
type MissingColumnsError struct {
	Label   string
	Missing []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"%s: This file doesn't match the expected export format. Missing required columns: %s",
		e.Label, strings.Join(e.Missing, ", "),
	)
}

// Unwrap exposes ErrMissingColumns to errors.Is.
func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Remediation returns the steps a user can take to fix the input.
func (e *MissingColumnsError) Remediation() []string {
	return []string{
		"Re-export from the CRM using the standard export",
		"Or generate the sample exports to see the expected structure",
	}
}

// Remediation returns the fix steps carried by a boundary error, or nil.
func Remediation(err error) []string {
	var readErr *ReadError
	if errors.As(err, &readErr) {
		return readErr.Remediation()
	}
	var colErr *MissingColumnsError
	if errors.As(err, &colErr) {
		return colErr.Remediation()
	}
	return nil
}

// Message renders a boundary error with its fix steps for display.
func Message(err error) string {
	if err == nil {
		return ""
	}
	fixes := Remediation(err)
	if len(fixes) == 0 {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n\nFix:")
	for _, fix := range fixes {
		b.WriteString("\n- ")
		b.WriteString(fix)
	}
	return b.String()
}
