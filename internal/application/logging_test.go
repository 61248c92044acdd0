package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/trip-tracker/internal/logging"
	"github.com/example/trip-tracker/internal/scheduler"
	"github.com/example/trip-tracker/internal/trip"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := zap.NewExample()
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}
	if got := defaultLogger(nil); got == nil {
		t.Fatalf("expected a no-op logger when none provided")
	}
}

func TestServiceLoggerPrefersContextLogger(t *testing.T) {
	t.Parallel()

	baseCore, baseLogs := observer.New(zap.DebugLevel)
	ctxCore, ctxLogs := observer.New(zap.DebugLevel)
	ctx := logging.ContextWithLogger(context.Background(), zap.New(ctxCore))

	serviceLogger(ctx, zap.New(baseCore), trackerServiceName, "Generate", zap.Int64("seed", 42)).Info("hello")

	if baseLogs.Len() != 0 {
		t.Fatalf("base logger should be bypassed when the context carries one")
	}
	entries := ctxLogs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["service"] != trackerServiceName || fields["operation"] != "Generate" || fields["seed"] != int64(42) {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestServiceLoggerFallsBackToBase(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	serviceLogger(context.Background(), zap.New(core), trackerServiceName, "").Info("x")
	if logs.Len() != 1 {
		t.Fatalf("expected base logger to receive the entry")
	}
	if _, ok := logs.All()[0].ContextMap()["operation"]; ok {
		t.Fatalf("empty operation should not be logged")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	_, tripErr := trip.New(trip.Params{})
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{tripErr, "invalid_trip"},
		{&scheduler.CapacityError{Date: time.Now(), Requested: 25, Capacity: 18}, "capacity_exceeded"},
		{fmt.Errorf("publish: %w", ErrPublishingDisabled), "publishing_disabled"},
		{context.Canceled, "canceled"},
		{&ValidationError{}, "validation"},
		{errors.New("boom"), "unexpected"},
	}
	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
