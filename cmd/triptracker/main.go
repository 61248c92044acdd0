// Command triptracker builds a trip tracker workbook from CRM exports on disk.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/application"
	"github.com/example/trip-tracker/internal/config"
	"github.com/example/trip-tracker/internal/logging"
	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/report"
	"github.com/example/trip-tracker/internal/stats"
	"github.com/example/trip-tracker/internal/storage"
	"github.com/example/trip-tracker/internal/trip"
	"github.com/example/trip-tracker/internal/workbook"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	accounts string
	contacts string
	template string
	out      string
	tripName string
	city     string
	start    string
	end      string
	meetings int
	owners   string
	seed     int64
	asJSON   bool
	publish  bool
	verbose  bool
}

// environment lets tests replace the pieces run takes from the process.
type environment struct {
	now         func() time.Time
	idGenerator func() string
	publisher   func(ctx context.Context, cfg config.Config, logger *zap.Logger) (application.Publisher, error)
}

func defaultEnvironment() environment {
	return environment{
		now:         time.Now,
		idGenerator: uuid.NewString,
		publisher: func(ctx context.Context, cfg config.Config, logger *zap.Logger) (application.Publisher, error) {
			if !cfg.PublishingEnabled() {
				return nil, application.ErrPublishingDisabled
			}
			return storage.NewS3(ctx, storage.S3Config{
				Region:        cfg.AWSRegion,
				Bucket:        cfg.S3Bucket,
				PresignExpiry: cfg.PresignExpiry,
			}, logger)
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return runWith(ctx, defaultEnvironment(), args, stdout, stderr)
}

func runWith(ctx context.Context, env environment, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}

	opts, err := parseFlags(cfg, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = logging.New(cfg.LogLevel); err != nil {
			fmt.Fprintln(stderr, err)
			return exitFail
		}
		defer func() { _ = logger.Sync() }()
	}

	params, err := loadInputs(opts, env.now)
	if err != nil {
		fmt.Fprintln(stderr, workbook.Message(err))
		return exitFail
	}

	var publisher application.Publisher
	if opts.publish {
		if publisher, err = env.publisher(ctx, cfg, logger); err != nil {
			fmt.Fprintf(stderr, "publishing unavailable: %v\n", err)
			return exitFail
		}
	}

	service := application.NewTrackerService(logger, publisher, env.idGenerator, env.now)
	tracker, err := service.Build(ctx, params)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFail
	}

	var publication *application.Publication
	switch {
	case opts.publish:
		pub, err := service.Publish(ctx, tracker)
		if err != nil {
			tracker.RunLog.Finish()
			fmt.Fprintln(stderr, tracker.RunLog.String())
			fmt.Fprintln(stderr, err)
			return exitFail
		}
		publication = &pub
	case !opts.asJSON:
		if _, err := tracker.ExportFile(opts.out); err != nil {
			fmt.Fprintln(stderr, err)
			return exitFail
		}
	}
	tracker.RunLog.Finish()

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newRunOutput(tracker, publication)); err != nil {
			fmt.Fprintln(stderr, err)
			return exitFail
		}
		return exitOK
	}

	fmt.Fprintln(stdout, tracker.RunLog.String())
	if publication != nil && publication.DownloadURL != "" {
		fmt.Fprintf(stdout, "Download: %s (expires %s)\n",
			publication.DownloadURL, publication.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return exitOK
}

func parseFlags(cfg config.Config, args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("triptracker", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := options{}
	fs.StringVar(&opts.accounts, "accounts", "", "accounts export (.xlsx or .csv, required)")
	fs.StringVar(&opts.contacts, "contacts", "", "contacts export (.xlsx or .csv)")
	fs.StringVar(&opts.template, "template", cfg.TemplatePath, "tracker template workbook (.xlsx)")
	fs.StringVar(&opts.out, "out", cfg.OutputDir, "directory the tracker is written to")
	fs.StringVar(&opts.tripName, "trip", trip.DefaultName, "trip name")
	fs.StringVar(&opts.city, "city", cfg.DefaultCity, "trip city; blank means no HQ city preference")
	fs.StringVar(&opts.start, "start", "", "first trip day, YYYY-MM-DD (default today)")
	fs.StringVar(&opts.end, "end", "", "last trip day, YYYY-MM-DD (default the day after -start)")
	fs.IntVar(&opts.meetings, "meetings", cfg.DefaultMeetings, "target number of meetings")
	fs.StringVar(&opts.owners, "owners", strings.Join(cfg.DefaultOwners, ", "), "comma separated account owners")
	fs.Int64Var(&opts.seed, "seed", cfg.DefaultSeed, "random seed")
	fs.BoolVar(&opts.asJSON, "json", false, "print meetings, issues, stats and the run log as JSON instead of writing a workbook")
	fs.BoolVar(&opts.publish, "publish", false, "upload the tracker to S3 and print a download link")
	fs.BoolVar(&opts.verbose, "v", false, "write structured logs to stderr")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if strings.TrimSpace(opts.accounts) == "" {
		return options{}, errors.New("-accounts is required")
	}
	return opts, nil
}

func loadInputs(opts options, now func() time.Time) (application.BuildParams, error) {
	start := trip.DateOf(now())
	if opts.start != "" {
		parsed, err := trip.ParseDate(opts.start)
		if err != nil {
			return application.BuildParams{}, err
		}
		start = parsed
	}
	end := start.AddDate(0, 0, 1)
	if opts.end != "" {
		parsed, err := trip.ParseDate(opts.end)
		if err != nil {
			return application.BuildParams{}, err
		}
		end = parsed
	}

	cfg, err := trip.New(trip.Params{
		Name:     opts.tripName,
		Start:    start,
		End:      end,
		Meetings: opts.meetings,
		City:     opts.city,
		Owners:   trip.ParseOwners(opts.owners),
		Seed:     opts.seed,
	})
	if err != nil {
		return application.BuildParams{}, err
	}

	accounts, err := workbook.OpenAccounts(opts.accounts)
	if err != nil {
		return application.BuildParams{}, err
	}
	var contacts *records.Table
	if opts.contacts != "" {
		if contacts, err = workbook.OpenContacts(opts.contacts); err != nil {
			return application.BuildParams{}, err
		}
	}
	var template *workbook.Template
	if opts.template != "" {
		if template, err = workbook.OpenTemplate(opts.template); err != nil {
			return application.BuildParams{}, err
		}
	}
	return application.BuildParams{
		Accounts: accounts,
		Contacts: contacts,
		Template: template,
		Trip:     cfg,
	}, nil
}

type issueOutput struct {
	Severity     string `json:"severity"`
	Entity       string `json:"entity"`
	EntityID     string `json:"entity_id"`
	Field        string `json:"field"`
	Message      string `json:"message"`
	SuggestedFix string `json:"suggested_fix"`
}

type publicationOutput struct {
	Location    string    `json:"location"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type runOutput struct {
	RunID       string              `json:"run_id"`
	Fingerprint string              `json:"fingerprint"`
	Trip        string              `json:"trip"`
	Dates       string              `json:"dates"`
	Meetings    []map[string]string `json:"meetings"`
	Issues      []issueOutput       `json:"issues"`
	Stats       stats.Summary       `json:"stats"`
	Publication *publicationOutput  `json:"publication,omitempty"`
	RunLog      []string            `json:"run_log"`
}

// newRunOutput keys each meeting by the tracker's column headers, so a template's
// header row carries through to the JSON.
func newRunOutput(t *application.Tracker, pub *application.Publication) runOutput {
	doc := t.Document()
	meetings := make([]map[string]string, 0, len(doc.Meetings.Rows))
	for _, row := range doc.Meetings.Rows {
		m := make(map[string]string, len(doc.Meetings.Headers))
		for i, header := range doc.Meetings.Headers {
			if i < len(row) {
				m[header] = row[i]
			}
		}
		meetings = append(meetings, m)
	}

	found := make([]issueOutput, 0, len(t.Result.Issues))
	for _, issue := range t.Result.Issues {
		found = append(found, issueOutput{
			Severity:     string(issue.Severity),
			Entity:       string(issue.Entity),
			EntityID:     issue.EntityID,
			Field:        issue.Field,
			Message:      issue.Message,
			SuggestedFix: report.SuggestFix(issue.Message, issue.Field, string(issue.Entity)),
		})
	}

	out := runOutput{
		RunID:       t.Result.RunID,
		Fingerprint: t.Result.Fingerprint,
		Trip:        t.Trip.Name(),
		Dates:       doc.Overview.Dates,
		Meetings:    meetings,
		Issues:      found,
		Stats:       t.Result.Stats,
		RunLog:      t.RunLog.Lines(),
	}
	if pub != nil {
		out.Publication = &publicationOutput{
			Location:    pub.Location,
			DownloadURL: pub.DownloadURL,
			ExpiresAt:   pub.ExpiresAt,
		}
	}
	return out
}
