package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/application"
	"github.com/example/trip-tracker/internal/logging"
	"github.com/example/trip-tracker/internal/scheduler"
	"github.com/example/trip-tracker/internal/trip"
	"github.com/example/trip-tracker/internal/workbook"
)

var (
	errBadMultipart    = errors.New("request must be a multipart form upload")
	errUploadTooLarge  = errors.New("uploaded files are too large")
	errMissingAccounts = errors.New("accounts export is required")
)

type responder struct {
	logger *zap.Logger
}

func newResponder(logger *zap.Logger) responder {
	return responder{logger: defaultLogger(logger)}
}

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Fix       []string          `json:"fix,omitempty"`
}

func (r responder) writeJSON(c *gin.Context, status int, payload any) {
	if payload == nil || status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

func (r responder) writeData(c *gin.Context, status int, data any) {
	r.writeJSON(c, status, dataResponse{Data: data})
}

func (r responder) writeError(c *gin.Context, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(c.Request.Context()).Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	r.writeJSON(c, status, errorResponse{Message: message})
}

// handleServiceError maps loader and service errors onto HTTP responses.
func (r responder) handleServiceError(c *gin.Context, err error) {
	logger := r.loggerFor(c.Request.Context())
	if err == nil {
		r.writeError(c, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	var (
		readErr *workbook.ReadError
		colErr  *workbook.MissingColumnsError
		vErr    *application.ValidationError
		capErr  *scheduler.CapacityError
		tripErr *trip.ConfigError
		maxErr  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &readErr):
		r.writeJSON(c, http.StatusBadRequest, errorResponse{
			ErrorCode: "NOT_READABLE",
			Message:   readErr.Error(),
			Fix:       readErr.Remediation(),
		})
	case errors.As(err, &colErr):
		r.writeJSON(c, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "MISSING_COLUMNS",
			Message:   colErr.Error(),
			Fix:       colErr.Remediation(),
		})
	case errors.As(err, &maxErr):
		r.writeJSON(c, http.StatusRequestEntityTooLarge, errorResponse{
			ErrorCode: "UPLOAD_TOO_LARGE",
			Message:   errUploadTooLarge.Error(),
		})
	case errors.As(err, &vErr):
		r.writeJSON(c, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "VALIDATION",
			Message:   "Some form values are missing or invalid.",
			Errors:    vErr.FieldErrors,
		})
	case errors.As(err, &capErr):
		r.writeJSON(c, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "CAPACITY_EXCEEDED",
			Message:   capErr.Error(),
		})
	case errors.As(err, &tripErr), errors.Is(err, scheduler.ErrNoDays):
		r.writeJSON(c, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "INVALID_TRIP",
			Message:   err.Error(),
		})
	case errors.Is(err, application.ErrPublishingDisabled):
		r.writeJSON(c, http.StatusServiceUnavailable, errorResponse{
			ErrorCode: "PUBLISHING_DISABLED",
			Message:   "Publishing is not configured on this server.",
		})
	default:
		logger.Error("tracker request failed", zap.Error(err), zap.String("error_kind", application.ErrorKind(err)))
		message := "Something went wrong while generating the tracker."
		if id, ok := RequestIDFromContext(c.Request.Context()); ok {
			message += " Quote request " + id + " when reporting this."
		}
		r.writeJSON(c, http.StatusInternalServerError, errorResponse{Message: message})
	}
}

func (r responder) loggerFor(ctx context.Context) *zap.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
