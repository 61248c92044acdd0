package trip

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout renders meeting dates, e.g. "Mar 03, 2025".
const DateLayout = "Jan 02, 2006"

// InputLayout is the ISO form accepted from flags and forms.
const InputLayout = "2006-01-02"

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a day using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads an ISO (2006-01-02) or display (Jan 02, 2006) date.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{InputLayout, DateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("trip: unrecognised date %q (want YYYY-MM-DD)", raw)
}

// DayCount returns the inclusive number of days between start and end, or a value
// <= 0 when end precedes start.
func DayCount(start, end time.Time) int {
	s, e := DateOf(start), DateOf(end)
	if e.Before(s) {
		return int(e.Sub(s).Hours()/24) + 1
	}
	n := 0
	for current := s; !current.After(e); current = current.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// ExpandDays lists every calendar day from start to end inclusive. It returns nil when
// end precedes start.
func ExpandDays(start, end time.Time) []time.Time {
	lower, upper := DateOf(start), DateOf(end)
	if upper.Before(lower) {
		return nil
	}
	days := make([]time.Time, 0, DayCount(lower, upper))
	for current := lower; !current.After(upper); current = current.AddDate(0, 0, 1) {
		days = append(days, current)
	}
	return days
}
