// Package issues holds the data-quality issue model and the append-only log a run
// reports into.
package issues

// Severity classifies how an issue affects the tracker.
type Severity string

const (
	// SeverityBlocker marks data that makes a meeting row unusable.
	SeverityBlocker Severity = "BLOCKER"
	// SeverityWarning marks data that leaves a meeting row incomplete.
	SeverityWarning Severity = "WARNING"
)

// Entity names the kind of record an issue refers to.
type Entity string

const (
	EntityAccount Entity = "account"
	EntityContact Entity = "contact"
	EntityMeeting Entity = "meeting"
)

// Issue is one data-quality finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Entity   Entity   `json:"entity"`
	EntityID string   `json:"entity_id"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

// Sink receives issues as a run discovers them.
type Sink interface {
	Add(issue Issue)
}

// Log is an append-only, ordered issue sink owned by a single run.
type Log struct {
	items []Issue
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Add appends issue to the log.
func (l *Log) Add(issue Issue) {
	l.items = append(l.items, issue)
}

// Warn appends a WARNING.
func (l *Log) Warn(entity Entity, entityID, field, message string) {
	l.Add(Issue{Severity: SeverityWarning, Entity: entity, EntityID: entityID, Field: field, Message: message})
}

// Block appends a BLOCKER.
func (l *Log) Block(entity Entity, entityID, field, message string) {
	l.Add(Issue{Severity: SeverityBlocker, Entity: entity, EntityID: entityID, Field: field, Message: message})
}

// Len returns the number of recorded issues.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns a copy of the recorded issues in insertion order.
func (l *Log) Items() []Issue {
	if l == nil {
		return nil
	}
	out := make([]Issue, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns how many issues carry the given severity.
func (l *Log) Count(severity Severity) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, issue := range l.items {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}
