package testfixtures

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/application"
)

// ServiceFactory assists tests with constructing the tracker service using
// deterministic run identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Logger      *zap.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("run"),
		Logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("run")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the run identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger *zap.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// NewTrackerService builds a tracker service. publisher may be nil.
func (f *ServiceFactory) NewTrackerService(publisher application.Publisher) *application.TrackerService {
	return application.NewTrackerService(f.Logger, publisher, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// Upload is one object handed to a RecordingPublisher.
type Upload struct {
	Key         string
	ContentType string
	Body        []byte
}

// RecordingPublisher is an in-memory Publisher that keeps every upload.
type RecordingPublisher struct {
	mu      sync.Mutex
	uploads []Upload
	// Err, when set, is returned by every Publish call.
	Err error
}

// Publish records the upload and returns a memory:// location for it.
func (p *RecordingPublisher) Publish(ctx context.Context, key, contentType string, body []byte) (application.Publication, error) {
	if err := ctx.Err(); err != nil {
		return application.Publication{}, err
	}
	if p.Err != nil {
		return application.Publication{}, p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := append([]byte(nil), body...)
	p.uploads = append(p.uploads, Upload{Key: key, ContentType: contentType, Body: copied})
	return application.Publication{
		Location:    "memory://" + key,
		DownloadURL: "https://downloads.example.com/" + key,
		ExpiresAt:   ReferenceTime().Add(time.Hour),
	}, nil
}

// Uploads returns a copy of the recorded uploads.
func (p *RecordingPublisher) Uploads() []Upload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Upload, len(p.uploads))
	copy(out, p.uploads)
	return out
}
