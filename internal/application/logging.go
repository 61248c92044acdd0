package application

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/logging"
	"github.com/example/trip-tracker/internal/scheduler"
	"github.com/example/trip-tracker/internal/trip"
)

func defaultLogger(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return zap.NewNop()
}

func serviceLogger(ctx context.Context, base *zap.Logger, serviceName, operation string, fields ...zap.Field) *zap.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pairs := []zap.Field{zap.String("service", serviceName)}
	if operation != "" {
		pairs = append(pairs, zap.String("operation", operation))
	}
	pairs = append(pairs, fields...)
	return logger.With(pairs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, trip.ErrInvalidConfig), errors.Is(err, scheduler.ErrNoDays):
		return "invalid_trip"
	case errors.Is(err, scheduler.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrPublishingDisabled):
		return "publishing_disabled"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
