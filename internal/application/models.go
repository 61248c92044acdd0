package application

import (
	"time"

	"github.com/example/trip-tracker/internal/issues"
	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/scheduler"
	"github.com/example/trip-tracker/internal/stats"
	"github.com/example/trip-tracker/internal/trip"
)

// Meeting status vocabulary.
const (
	StatusProposed    = "Proposed"
	StatusTentative   = "Tentative"
	StatusConfirmed   = "Confirmed"
	StatusRescheduled = "Rescheduled"
	StatusCancelled   = "Cancelled"
	StatusDone        = "Done"
)

// Statuses returns the status vocabulary in draw order.
func Statuses() []string {
	return []string{StatusProposed, StatusTentative, StatusConfirmed, StatusRescheduled, StatusCancelled, StatusDone}
}

// MeetingHeaders returns the tracker column headers in export order.
func MeetingHeaders() []string {
	return []string{
		"Customer Account Name",
		"Meeting Date",
		"Meeting Time",
		"Meeting City",
		"Meeting Address",
		"East40 Meeting Owner",
		"Primary Contact Name",
		"Primary Contact Email",
		"Meeting Status",
		"Company Description",
	}
}

// StatusColumn is the 1-based position of "Meeting Status" in MeetingHeaders.
const StatusColumn = 9

// MeetingRecord is one row of the tracker.
type MeetingRecord struct {
	AccountName  string
	Date         time.Time
	Time         string
	City         string
	Address      string
	Owner        string
	ContactName  string
	ContactEmail string
	Status       string
	Description  string
}

// Values returns the record's cells aligned with MeetingHeaders.
func (m MeetingRecord) Values() []string {
	return []string{
		m.AccountName,
		trip.FormatDate(m.Date),
		m.Time,
		m.City,
		m.Address,
		m.Owner,
		m.ContactName,
		m.ContactEmail,
		m.Status,
		m.Description,
	}
}

// GenerateParams is the input to TrackerService.Generate.
type GenerateParams struct {
	Accounts records.AccountTable
	Contacts records.ContactSource
	Trip     trip.Config
}

// Result is the output of one tracker run.
type Result struct {
	RunID       string
	GeneratedAt time.Time
	Selected    []records.Account
	Meetings    []MeetingRecord
	Issues      []issues.Issue
	Stats       stats.Summary
	Conflicts   []scheduler.Conflict
	Fingerprint string
}

// DuplicateBookings counts meetings that repeat an earlier (owner, date, time).
func (r Result) DuplicateBookings() int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Type == scheduler.ConflictTypeOwner && len(c.Indexes) > 1 {
			n += len(c.Indexes) - 1
		}
	}
	return n
}
