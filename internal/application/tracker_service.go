package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/contacts"
	"github.com/example/trip-tracker/internal/issues"
	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/rng"
	"github.com/example/trip-tracker/internal/scheduler"
	"github.com/example/trip-tracker/internal/selection"
	"github.com/example/trip-tracker/internal/stats"
)

const trackerServiceName = "TrackerService"

// Issue fields and messages raised while assembling meetings.
const (
	FieldCompanies  = "Companies"
	FieldHQAddress  = "HQ Address"
	FieldEmail      = "Email"
	MsgMissingName  = "Missing account name."
	MsgMissingAddr  = "Missing HQ address; meeting address left blank."
	MsgMissingEmail = "Primary contact email missing."
)

// Publisher stores an exported tracker and returns where it can be fetched.
type Publisher interface {
	Publish(ctx context.Context, key, contentType string, body []byte) (Publication, error)
}

// Publication describes a published tracker.
type Publication struct {
	Location    string
	DownloadURL string
	ExpiresAt   time.Time
}

// TrackerService generates trip trackers from CRM exports.
type TrackerService struct {
	logger      *zap.Logger
	publisher   Publisher
	idGenerator func() string
	now         func() time.Time
}

// NewTrackerService wires dependencies for tracker generation. publisher may be nil
// when object storage is not configured.
func NewTrackerService(logger *zap.Logger, publisher Publisher, idGenerator func() string, now func() time.Time) *TrackerService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TrackerService{
		logger:      defaultLogger(logger),
		publisher:   publisher,
		idGenerator: idGenerator,
		now:         now,
	}
}

// Generate selects accounts, schedules them, resolves contacts, and aggregates stats.
//
// A single stream seeded from the trip drives every random decision in a fixed order:
// the account sample, then one shuffle per trip day, then one status draw per meeting.
// Data problems are reported as issues; only trip configuration errors fail the run.
func (s *TrackerService) Generate(ctx context.Context, params GenerateParams) (Result, error) {
	if s == nil {
		return Result{}, fmt.Errorf("TrackerService is nil")
	}
	cfg := params.Trip
	logger := serviceLogger(ctx, s.logger, trackerServiceName, "Generate",
		zap.String("trip", cfg.Name()),
		zap.Int64("seed", cfg.Seed()),
	)

	if cfg.Meetings() <= 0 {
		vErr := &ValidationError{}
		vErr.Add("trip", "trip configuration is required")
		logger.Warn("tracker generation rejected", zap.String("error_kind", ErrorKind(vErr)))
		return Result{}, vErr
	}

	source := params.Contacts
	if source == nil {
		source = records.NoContacts{}
	}

	stream := rng.New(cfg.Seed())
	picked := selection.Pick(params.Accounts, cfg.Meetings(), cfg.City(), stream)

	slots, err := scheduler.Generate(cfg.Start(), cfg.End(), len(picked), stream)
	if err != nil {
		logger.Warn("schedule generation failed", zap.Error(err), zap.String("error_kind", ErrorKind(err)))
		return Result{}, err
	}

	resolver := contacts.NewResolver(source)
	log := issues.NewLog()
	statuses := Statuses()

	meetings := make([]MeetingRecord, 0, len(picked))
	owners := make([]string, 0, len(picked))
	statusValues := make([]string, 0, len(picked))
	industries := make([]string, 0, len(picked))
	bookings := make([]scheduler.Booking, 0, len(picked))

	for i, account := range picked {
		slot := slots[i]
		owner := cfg.Owner(i)
		status := rng.Choice(stream, statuses)
		address := meetingAddress(account, cfg.City())
		match := resolver.Resolve(account, log)

		id := account.IDOrUnknown()
		if account.Name == "" {
			log.Block(issues.EntityAccount, id, FieldCompanies, MsgMissingName)
		}
		if address == "" {
			log.Warn(issues.EntityAccount, id, FieldHQAddress, MsgMissingAddr)
		}
		if match.Email == "" {
			log.Warn(issues.EntityContact, id, FieldEmail, MsgMissingEmail)
		}

		meetings = append(meetings, MeetingRecord{
			AccountName:  account.Name,
			Date:         slot.Date,
			Time:         slot.Time,
			City:         cfg.City(),
			Address:      address,
			Owner:        owner,
			ContactName:  match.Name,
			ContactEmail: match.Email,
			Status:       status,
			Description:  account.Description,
		})
		owners = append(owners, owner)
		statusValues = append(statusValues, status)
		industries = append(industries, account.IndustryGroup)
		bookings = append(bookings, scheduler.Booking{Index: i, Owner: owner, Date: slot.Date, Time: slot.Time})
	}

	result := Result{
		RunID:       s.idGenerator(),
		GeneratedAt: s.now(),
		Selected:    picked,
		Meetings:    meetings,
		Issues:      log.Items(),
		Stats: stats.Aggregate(stats.Input{
			AccountsLoaded: params.Accounts.Len(),
			ContactsLoaded: records.ContactCount(source),
			Days:           cfg.DayCount(),
			Owners:         owners,
			Statuses:       statusValues,
			Industries:     industries,
		}),
		Conflicts: scheduler.DetectConflicts(bookings),
	}
	result.Fingerprint = Fingerprint(result.Meetings, result.Issues)

	logger.Info("tracker generated",
		zap.String("run_id", result.RunID),
		zap.Int("meetings", len(result.Meetings)),
		zap.Int("issues", len(result.Issues)),
		zap.Int("blockers", log.Count(issues.SeverityBlocker)),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.String("fingerprint", result.Fingerprint),
	)
	return result, nil
}

func meetingAddress(account records.Account, tripCity string) string {
	city := account.HQCity
	if city == "" {
		city = tripCity
	}
	parts := make([]string, 0, 3)
	for _, part := range []string{account.Address1, account.Address2, city} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
