package report

import (
	"fmt"
	"strings"
	"time"
)

const (
	markOK   = "✓"
	markWarn = "⚠️"
)

// StatusLine prefixes msg with a success or warning mark.
func StatusLine(ok bool, msg string) string {
	if ok {
		return markOK + " " + msg
	}
	return markWarn + " " + msg
}

// RunLog collects the progress lines shown to the user and written into the tracker.
type RunLog struct {
	lines   []string
	started time.Time
	now     func() time.Time
}

// NewRunLog starts a run log timed by now.
func NewRunLog(now func() time.Time) *RunLog {
	if now == nil {
		now = time.Now
	}
	return &RunLog{started: now(), now: now}
}

// OK appends a success line.
func (l *RunLog) OK(format string, args ...any) {
	l.lines = append(l.lines, StatusLine(true, fmt.Sprintf(format, args...)))
}

// Warn appends a warning line.
func (l *RunLog) Warn(format string, args ...any) {
	l.lines = append(l.lines, StatusLine(false, fmt.Sprintf(format, args...)))
}

// Check appends a success or warning line depending on ok.
func (l *RunLog) Check(ok bool, msg string) {
	l.lines = append(l.lines, StatusLine(ok, msg))
}

// Finish appends a blank line and the elapsed time.
func (l *RunLog) Finish() {
	elapsed := l.now().Sub(l.started)
	l.lines = append(l.lines, "", fmt.Sprintf("Done in %.1f seconds ✨", elapsed.Seconds()))
}

// Lines returns a copy of the recorded lines.
func (l *RunLog) Lines() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// String joins the lines with newlines.
func (l *RunLog) String() string {
	return strings.Join(l.Lines(), "\n")
}
