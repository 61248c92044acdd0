// Package scheduler assigns meetings to trip days and business-hour slots and checks
// the result for double bookings.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/trip-tracker/internal/rng"
	"github.com/example/trip-tracker/internal/trip"
)

const (
	firstSlotMinutes = 9 * 60
	lastSlotMinutes  = 17*60 + 30
	slotStepMinutes  = 30
)

// SlotsPerDay is the number of bookable slots in one trip day.
const SlotsPerDay = (lastSlotMinutes-firstSlotMinutes)/slotStepMinutes + 1

var (
	// ErrCapacityExceeded is wrapped by CapacityError.
	ErrCapacityExceeded = errors.New("scheduler: day capacity exceeded")
	// ErrNoDays indicates the trip window contains no days.
	ErrNoDays = errors.New("scheduler: trip has no days")
)

// CapacityError reports a day that would need more meetings than it has slots.
type CapacityError struct {
	Date      time.Time
	Requested int
	Capacity  int
}

// Error implements the error interface.
func (e *CapacityError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"scheduler: %s needs %d meetings but only %d slots are available per day; extend the trip or request fewer meetings",
		trip.FormatDate(e.Date), e.Requested, e.Capacity,
	)
}

// Unwrap exposes ErrCapacityExceeded to errors.Is.
func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}

// Slot is one (date, time of day) booking.
type Slot struct {
	Date time.Time
	Time string
}

// SlotTimes returns the bookable times of a day in ascending order.
func SlotTimes() []string {
	times := make([]string, 0, SlotsPerDay)
	for m := firstSlotMinutes; m <= lastSlotMinutes; m += slotStepMinutes {
		times = append(times, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return times
}

// Generate returns n slots spread over the inclusive days from start to end.
//
// Meeting i lands on day i mod days, so bucket sizes differ by at most one. Each day
// shuffles its candidate times with stream, keeps its bucket size, and sorts them.
// Slots are returned grouped by day. Capacity is checked before stream is touched.
func Generate(start, end time.Time, n int, stream *rng.Stream) ([]Slot, error) {
	days := trip.ExpandDays(start, end)
	if len(days) == 0 {
		return nil, ErrNoDays
	}
	if n <= 0 {
		return nil, nil
	}

	counts := make([]int, len(days))
	for i := 0; i < n; i++ {
		counts[i%len(days)]++
	}
	// Bucket 0 is always the largest.
	if counts[0] > SlotsPerDay {
		return nil, &CapacityError{Date: days[0], Requested: counts[0], Capacity: SlotsPerDay}
	}

	slots := make([]Slot, 0, n)
	for d, day := range days {
		times := SlotTimes()
		stream.Shuffle(len(times), func(i, j int) { times[i], times[j] = times[j], times[i] })
		taken := times[:counts[d]]
		sort.Strings(taken)
		for _, t := range taken {
			slots = append(slots, Slot{Date: day, Time: t})
		}
	}
	return slots, nil
}
