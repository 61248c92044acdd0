// Package trip models the trip a tracker is generated for and expands its calendar.
package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Defaults applied when a caller leaves a field unset.
const (
	DefaultName     = "Trip Tracker"
	DefaultCity     = "Riyadh"
	DefaultMeetings = 12
	DefaultSeed     = 42
	// FallbackOwner is used when the owner list is empty.
	FallbackOwner = "Owner"
)

// DefaultOwners returns the owner list used when none is configured.
func DefaultOwners() []string {
	return []string{"Jason", "Meshari"}
}

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("trip: invalid configuration")

// ConfigError reports a trip configuration that cannot produce a schedule.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("trip: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap exposes ErrInvalidConfig to errors.Is.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Params is the caller supplied input to New.
type Params struct {
	Name     string
	Start    time.Time
	End      time.Time
	Meetings int
	City     string
	Owners   []string
	Seed     int64
}

// Config is a validated, immutable trip configuration.
type Config struct {
	name     string
	start    time.Time
	end      time.Time
	meetings int
	city     string
	owners   []string
	seed     int64
}

// New validates p and returns the resulting Config. Dates are truncated to calendar
// days in UTC; the end date is inclusive.
func New(p Params) (Config, error) {
	if p.Start.IsZero() {
		return Config{}, &ConfigError{Field: "start date", Reason: "start date is required"}
	}
	if p.End.IsZero() {
		return Config{}, &ConfigError{Field: "end date", Reason: "end date is required"}
	}
	start := DateOf(p.Start)
	end := DateOf(p.End)
	if end.Before(start) {
		return Config{}, &ConfigError{
			Field:  "end date",
			Reason: fmt.Sprintf("end date %s is before start date %s", FormatDate(end), FormatDate(start)),
		}
	}
	if p.Meetings <= 0 {
		return Config{}, &ConfigError{
			Field:  "meetings",
			Reason: fmt.Sprintf("meeting count must be positive, got %d", p.Meetings),
		}
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = DefaultName
	}

	owners := make([]string, 0, len(p.Owners))
	for _, owner := range p.Owners {
		if trimmed := strings.TrimSpace(owner); trimmed != "" {
			owners = append(owners, trimmed)
		}
	}
	if len(owners) == 0 {
		owners = []string{FallbackOwner}
	}

	return Config{
		name:     name,
		start:    start,
		end:      end,
		meetings: p.Meetings,
		city:     strings.TrimSpace(p.City),
		owners:   owners,
		seed:     p.Seed,
	}, nil
}

// Name returns the trip name.
func (c Config) Name() string { return c.name }

// Start returns the first trip day.
func (c Config) Start() time.Time { return c.start }

// End returns the last trip day, inclusive.
func (c Config) End() time.Time { return c.end }

// Meetings returns the target meeting count.
func (c Config) Meetings() int { return c.meetings }

// City returns the trip city label, possibly blank.
func (c Config) City() string { return c.city }

// Seed returns the random seed.
func (c Config) Seed() int64 { return c.seed }

// Owners returns a copy of the ordered owner list. It is never empty for a Config
// built by New.
func (c Config) Owners() []string {
	out := make([]string, len(c.owners))
	copy(out, c.owners)
	return out
}

// Owner returns the owner of the i-th meeting in round-robin order.
func (c Config) Owner(i int) string {
	if len(c.owners) == 0 {
		return FallbackOwner
	}
	return c.owners[i%len(c.owners)]
}

// Days returns every calendar day of the trip.
func (c Config) Days() []time.Time {
	return ExpandDays(c.start, c.end)
}

// DayCount returns the inclusive number of trip days.
func (c Config) DayCount() int {
	return DayCount(c.start, c.end)
}

// ParseOwners splits a comma separated owner list, dropping blank entries.
func ParseOwners(raw string) []string {
	parts := strings.Split(raw, ",")
	owners := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			owners = append(owners, trimmed)
		}
	}
	return owners
}
