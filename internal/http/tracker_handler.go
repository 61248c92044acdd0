package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/application"
	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/report"
	"github.com/example/trip-tracker/internal/stats"
	"github.com/example/trip-tracker/internal/trip"
	"github.com/example/trip-tracker/internal/workbook"
)

const trackerHandlerName = "TrackerHandler"

// Form field names accepted by the tracker endpoints.
const (
	fieldAccounts  = "accounts"
	fieldContacts  = "contacts"
	fieldTemplate  = "template"
	fieldTripName  = "trip_name"
	fieldCity      = "city"
	fieldStartDate = "start_date"
	fieldEndDate   = "end_date"
	fieldMeetings  = "meetings"
	fieldOwners    = "owners"
	fieldSeed      = "seed"
	fieldPublish   = "publish"
)

// Response headers set on workbook downloads.
const (
	RunIDHeader       = "X-Run-ID"
	FingerprintHeader = "X-Run-Fingerprint"
)

// TripDefaults fill trip form fields the client leaves out.
type TripDefaults struct {
	City     string
	Owners   []string
	Meetings int
	Seed     int64
}

// TrackerHandlerOptions configures a TrackerHandler.
type TrackerHandlerOptions struct {
	Defaults TripDefaults
	// Template is used when a request uploads none.
	Template *workbook.Template
	// MaxUploadBytes caps the request body. Zero means unlimited.
	MaxUploadBytes int64
}

// TrackerHandler serves tracker generation requests.
type TrackerHandler struct {
	service   *application.TrackerService
	opts      TrackerHandlerOptions
	logger    *zap.Logger
	responder responder
}

// NewTrackerHandler wires the tracker endpoints to service.
func NewTrackerHandler(service *application.TrackerService, opts TrackerHandlerOptions, logger *zap.Logger) *TrackerHandler {
	if opts.Defaults.Meetings <= 0 {
		opts.Defaults.Meetings = trip.DefaultMeetings
	}
	if len(opts.Defaults.Owners) == 0 {
		opts.Defaults.Owners = trip.DefaultOwners()
	}
	logger = defaultLogger(logger)
	return &TrackerHandler{
		service:   service,
		opts:      opts,
		logger:    logger,
		responder: newResponder(logger),
	}
}

type trackerRequest struct {
	params  application.BuildParams
	publish bool
}

// Create builds a tracker and returns it as a workbook download, or publishes it when
// the form sets publish=true.
func (h *TrackerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	logger := handlerLogger(ctx, h.logger, trackerHandlerName, "Create")

	req, err := h.parseRequest(c)
	if err != nil {
		h.responder.handleServiceError(c, err)
		return
	}

	tracker, err := h.service.Build(ctx, req.params)
	if err != nil {
		h.responder.handleServiceError(c, err)
		return
	}

	if req.publish {
		pub, err := h.service.Publish(ctx, tracker)
		if err != nil {
			h.responder.handleServiceError(c, err)
			return
		}
		tracker.RunLog.Finish()
		h.responder.writeData(c, http.StatusCreated, newPublicationDTO(tracker, pub))
		return
	}

	var buf bytes.Buffer
	if err := tracker.Export(&buf); err != nil {
		h.responder.handleServiceError(c, err)
		return
	}
	logger.Info("tracker exported",
		zap.String("run_id", tracker.Result.RunID),
		zap.Int("meetings", len(tracker.Result.Meetings)),
		zap.Int("bytes", buf.Len()),
	)

	c.Header(RunIDHeader, tracker.Result.RunID)
	c.Header(FingerprintHeader, tracker.Result.Fingerprint)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tracker.Filename))
	c.Data(http.StatusOK, application.XLSXContentType, buf.Bytes())
}

// Preview runs generation and returns the structured result as JSON.
func (h *TrackerHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.parseRequest(c)
	if err != nil {
		h.responder.handleServiceError(c, err)
		return
	}
	tracker, err := h.service.Build(ctx, req.params)
	if err != nil {
		h.responder.handleServiceError(c, err)
		return
	}
	tracker.RunLog.Finish()
	h.responder.writeData(c, http.StatusOK, newPreviewDTO(tracker))
}

// parseRequest validates the multipart form and loads its exports. Form problems are
// collected into one ValidationError; export problems are returned as loader errors.
func (h *TrackerHandler) parseRequest(c *gin.Context) (trackerRequest, error) {
	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}
	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return trackerRequest{}, maxErr
		}
		vErr := &application.ValidationError{}
		vErr.Add("form", errBadMultipart.Error())
		return trackerRequest{}, vErr
	}

	vErr := &application.ValidationError{}
	params := trip.Params{
		Name:     formValue(form, fieldTripName),
		City:     h.opts.Defaults.City,
		Owners:   h.opts.Defaults.Owners,
		Meetings: h.opts.Defaults.Meetings,
		Seed:     h.opts.Defaults.Seed,
	}
	if values, ok := form.Value[fieldCity]; ok && len(values) > 0 {
		params.City = strings.TrimSpace(values[0])
	}
	if owners := trip.ParseOwners(formValue(form, fieldOwners)); len(owners) > 0 {
		params.Owners = owners
	}

	params.Start = parseDateField(vErr, form, fieldStartDate)
	params.End = parseDateField(vErr, form, fieldEndDate)

	if raw := formValue(form, fieldMeetings); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			vErr.Add(fieldMeetings, "meetings must be a positive whole number")
		} else {
			params.Meetings = n
		}
	}
	if raw := formValue(form, fieldSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			vErr.Add(fieldSeed, "seed must be a whole number")
		} else {
			params.Seed = seed
		}
	}

	publish := false
	if raw := formValue(form, fieldPublish); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			vErr.Add(fieldPublish, "publish must be true or false")
		} else {
			publish = parsed
		}
	}

	accountsFile := firstFile(form, fieldAccounts)
	if accountsFile == nil {
		vErr.Add(fieldAccounts, errMissingAccounts.Error())
	}
	if vErr.HasErrors() {
		return trackerRequest{}, vErr
	}

	cfg, err := trip.New(params)
	if err != nil {
		return trackerRequest{}, err
	}

	accounts, err := loadUpload(accountsFile, workbook.LoadAccounts)
	if err != nil {
		return trackerRequest{}, err
	}
	var contactsTable *records.Table
	if fh := firstFile(form, fieldContacts); fh != nil {
		if contactsTable, err = loadUpload(fh, workbook.LoadContacts); err != nil {
			return trackerRequest{}, err
		}
	}
	template := h.opts.Template
	if fh := firstFile(form, fieldTemplate); fh != nil {
		if template, err = loadUpload(fh, workbook.LoadTemplate); err != nil {
			return trackerRequest{}, err
		}
	}

	return trackerRequest{
		params: application.BuildParams{
			Accounts: accounts,
			Contacts: contactsTable,
			Template: template,
			Trip:     cfg,
		},
		publish: publish,
	}, nil
}

func formValue(form *multipart.Form, field string) string {
	if values := form.Value[field]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

func parseDateField(vErr *application.ValidationError, form *multipart.Form, field string) time.Time {
	raw := formValue(form, field)
	if raw == "" {
		vErr.Add(field, strings.ReplaceAll(field, "_", " ")+" is required")
		return time.Time{}
	}
	day, err := trip.ParseDate(raw)
	if err != nil {
		vErr.Add(field, "use YYYY-MM-DD")
		return time.Time{}
	}
	return day
}

func loadUpload[T any](fh *multipart.FileHeader, load func(string, io.Reader) (T, error)) (T, error) {
	file, err := fh.Open()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer file.Close()
	return load(fh.Filename, file)
}

type meetingDTO struct {
	AccountName  string `json:"account_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	City         string `json:"city"`
	Address      string `json:"address"`
	Owner        string `json:"owner"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Status       string `json:"status"`
	Description  string `json:"description"`
}

type issueDTO struct {
	Severity     string `json:"severity"`
	Entity       string `json:"entity"`
	EntityID     string `json:"entity_id"`
	Field        string `json:"field"`
	Message      string `json:"message"`
	SuggestedFix string `json:"suggested_fix"`
}

type tripDTO struct {
	Name      string   `json:"name"`
	City      string   `json:"city"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Meetings  int      `json:"meetings"`
	Owners    []string `json:"owners"`
	Seed      int64    `json:"seed"`
}

type previewDTO struct {
	RunID             string        `json:"run_id"`
	Fingerprint       string        `json:"fingerprint"`
	Filename          string        `json:"filename"`
	Trip              tripDTO       `json:"trip"`
	Meetings          []meetingDTO  `json:"meetings"`
	Issues            []issueDTO    `json:"issues"`
	Stats             stats.Summary `json:"stats"`
	DuplicateBookings int           `json:"duplicate_bookings"`
	RunLog            []string      `json:"run_log"`
}

type publicationDTO struct {
	RunID       string    `json:"run_id"`
	Fingerprint string    `json:"fingerprint"`
	Filename    string    `json:"filename"`
	Location    string    `json:"location"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	RunLog      []string  `json:"run_log"`
}

func newPreviewDTO(t *application.Tracker) previewDTO {
	result := t.Result
	meetings := make([]meetingDTO, 0, len(result.Meetings))
	for _, m := range result.Meetings {
		meetings = append(meetings, meetingDTO{
			AccountName:  m.AccountName,
			Date:         m.Date.Format(trip.InputLayout),
			Time:         m.Time,
			City:         m.City,
			Address:      m.Address,
			Owner:        m.Owner,
			ContactName:  m.ContactName,
			ContactEmail: m.ContactEmail,
			Status:       m.Status,
			Description:  m.Description,
		})
	}
	found := make([]issueDTO, 0, len(result.Issues))
	for _, issue := range result.Issues {
		found = append(found, issueDTO{
			Severity:     string(issue.Severity),
			Entity:       string(issue.Entity),
			EntityID:     issue.EntityID,
			Field:        issue.Field,
			Message:      issue.Message,
			SuggestedFix: report.SuggestFix(issue.Message, issue.Field, string(issue.Entity)),
		})
	}
	return previewDTO{
		RunID:       result.RunID,
		Fingerprint: result.Fingerprint,
		Filename:    t.Filename,
		Trip: tripDTO{
			Name:      t.Trip.Name(),
			City:      t.Trip.City(),
			StartDate: t.Trip.Start().Format(trip.InputLayout),
			EndDate:   t.Trip.End().Format(trip.InputLayout),
			Meetings:  t.Trip.Meetings(),
			Owners:    t.Trip.Owners(),
			Seed:      t.Trip.Seed(),
		},
		Meetings:          meetings,
		Issues:            found,
		Stats:             result.Stats,
		DuplicateBookings: result.DuplicateBookings(),
		RunLog:            t.RunLog.Lines(),
	}
}

func newPublicationDTO(t *application.Tracker, pub application.Publication) publicationDTO {
	return publicationDTO{
		RunID:       t.Result.RunID,
		Fingerprint: t.Result.Fingerprint,
		Filename:    t.Filename,
		Location:    pub.Location,
		DownloadURL: pub.DownloadURL,
		ExpiresAt:   pub.ExpiresAt,
		RunLog:      t.RunLog.Lines(),
	}
}
