package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/report"
	"github.com/example/trip-tracker/internal/trip"
	"github.com/example/trip-tracker/internal/workbook"
)

// XLSXContentType is the media type of an exported tracker.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BuildParams is the input to TrackerService.Build. Contacts and Template are optional.
type BuildParams struct {
	Accounts *records.Table
	Contacts *records.Table
	Template *workbook.Template
	Trip     trip.Config
}

// Tracker is a generated tracker ready to export.
type Tracker struct {
	Result    Result
	Directory report.Directory
	Filename  string
	Trip      trip.Config
	RunLog    *report.RunLog

	headers []string
}

// Build runs Generate over loaded exports and prepares everything the workbook shows:
// the contacts directory, the schedule check, and the run log.
func (s *TrackerService) Build(ctx context.Context, params BuildParams) (*Tracker, error) {
	if s == nil {
		return nil, fmt.Errorf("TrackerService is nil")
	}
	logger := serviceLogger(ctx, s.logger, trackerServiceName, "Build")

	runLog := report.NewRunLog(s.now)
	accounts := records.AccountsFromTable(params.Accounts)
	source := records.ContactSourceFrom(params.Contacts)

	runLog.OK("%d accounts loaded", accounts.Len())
	if count := records.ContactCount(source); count == 0 {
		runLog.Warn("No contacts provided (contacts directory will be blank)")
	} else {
		runLog.OK("%d contacts loaded", count)
	}

	result, err := s.Generate(ctx, GenerateParams{Accounts: accounts, Contacts: source, Trip: params.Trip})
	if err != nil {
		return nil, err
	}
	runLog.OK("%d meetings generated", len(result.Meetings))

	names := make([]string, 0, len(result.Meetings))
	for _, m := range result.Meetings {
		names = append(names, m.AccountName)
	}
	directory := report.ContactsDirectory(accounts, source, names)
	if directory.Len() == 0 {
		runLog.Warn("Contacts directory: no matching contacts (or none provided)")
	} else {
		runLog.OK("Contacts directory: %d contacts included", directory.Len())
	}

	runLog.OK("Trip dates: %s", isoRange(params.Trip))
	if dup := result.DuplicateBookings(); dup == 0 {
		runLog.OK("No owner/time conflicts detected")
	} else {
		runLog.Warn("%d owner/time conflicts detected (review recommended)", dup)
	}
	runLog.OK("Run fingerprint: %s", result.Fingerprint)

	tracker := &Tracker{
		Result:    result,
		Directory: directory,
		Filename:  report.SafeFilename(params.Trip.Name()),
		Trip:      params.Trip,
		RunLog:    runLog,
		headers:   params.Template.HeadersOr(MeetingHeaders()),
	}
	logger.Debug("tracker built",
		zap.String("run_id", result.RunID),
		zap.String("filename", tracker.Filename),
		zap.Int("directory_contacts", directory.Len()),
	)
	return tracker, nil
}

// Document lays the tracker out for the workbook writer. Every issue gets a suggested
// fix derived from its message, field, and entity.
func (t *Tracker) Document() workbook.Document {
	result := t.Result

	meetingRows := make([][]string, 0, len(result.Meetings))
	for _, m := range result.Meetings {
		meetingRows = append(meetingRows, m.Values())
	}

	issueRows := make([][]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issueRows = append(issueRows, []string{
			string(issue.Severity),
			string(issue.Entity),
			issue.EntityID,
			issue.Field,
			issue.Message,
			report.SuggestFix(issue.Message, issue.Field, string(issue.Entity)),
		})
	}

	statusColumn := 0
	if len(t.headers) >= StatusColumn {
		statusColumn = StatusColumn
	}

	return workbook.Document{
		Overview: workbook.Overview{
			Trip:     t.Trip.Name(),
			Dates:    isoRange(t.Trip),
			City:     t.Trip.City(),
			Meetings: result.Stats.Meetings,
			RunLog:   t.RunLog.Lines(),
		},
		Summary: []workbook.CountTable{
			{Title: "Meetings by Status", Counts: result.Stats.StatusCounts},
			{Title: "Meetings by Owner", Counts: result.Stats.OwnerCounts},
			{Title: "Accounts by Industry Group", Counts: result.Stats.IndustryCounts},
		},
		Meetings:      workbook.Sheet{Headers: t.headers, Rows: meetingRows},
		StatusColumn:  statusColumn,
		StatusOptions: Statuses(),
		Contacts:      workbook.Sheet{Headers: t.Directory.Headers, Rows: t.Directory.Rows},
		Issues:        workbook.Sheet{Headers: workbook.IssueHeaders, Rows: issueRows},
	}
}

// Export writes the tracker workbook to w and records it in the run log.
func (t *Tracker) Export(w io.Writer) error {
	if err := workbook.Write(w, t.Document()); err != nil {
		t.RunLog.Warn("Failed to generate the Excel file")
		return err
	}
	t.RunLog.OK("Excel created: %s", t.Filename)
	return nil
}

// ExportFile writes the tracker workbook into dir and returns its path.
func (t *Tracker) ExportFile(dir string) (string, error) {
	out := filepath.Join(dir, t.Filename)
	if err := workbook.WriteFile(out, t.Document()); err != nil {
		t.RunLog.Warn("Failed to generate the Excel file")
		return "", err
	}
	t.RunLog.OK("Excel created: %s", t.Filename)
	return out, nil
}

// Publish exports the tracker and hands it to the configured publisher under
// trackers/<run id>/<filename>.
func (s *TrackerService) Publish(ctx context.Context, tracker *Tracker) (Publication, error) {
	if s == nil {
		return Publication{}, fmt.Errorf("TrackerService is nil")
	}
	logger := serviceLogger(ctx, s.logger, trackerServiceName, "Publish")
	if s.publisher == nil {
		return Publication{}, ErrPublishingDisabled
	}

	var buf bytes.Buffer
	if err := tracker.Export(&buf); err != nil {
		logger.Error("tracker export failed", zap.Error(err))
		return Publication{}, err
	}

	runID := tracker.Result.RunID
	if runID == "" {
		runID = tracker.Result.Fingerprint
	}
	key := path.Join("trackers", runID, tracker.Filename)

	pub, err := s.publisher.Publish(ctx, key, XLSXContentType, buf.Bytes())
	if err != nil {
		tracker.RunLog.Warn("Failed to publish the tracker")
		logger.Error("tracker publish failed", zap.Error(err), zap.String("key", key), zap.String("error_kind", ErrorKind(err)))
		return Publication{}, err
	}
	tracker.RunLog.OK("Published: %s", pub.Location)
	logger.Info("tracker published", zap.String("key", key), zap.String("location", pub.Location))
	return pub, nil
}

func isoRange(cfg trip.Config) string {
	return fmt.Sprintf("%s to %s", cfg.Start().Format(trip.InputLayout), cfg.End().Format(trip.InputLayout))
}
