package scheduler

import (
	"sort"
	"time"

	"github.com/example/trip-tracker/internal/records"
)

// Booking is a scheduled meeting as seen by conflict detection.
type Booking struct {
	Index int
	Owner string
	Date  time.Time
	Time  string
}

// ConflictType describes the type of conflict detected between bookings.
type ConflictType string

const (
	// ConflictTypeOwner indicates an owner is double-booked.
	ConflictTypeOwner ConflictType = "owner"
	// ConflictTypeSlot indicates a slot is shared by different owners.
	ConflictTypeSlot ConflictType = "slot"
)

// Conflict details bookings sharing a date and time.
type Conflict struct {
	Type    ConflictType
	Owner   string
	Date    time.Time
	Time    string
	Indexes []int
}

type slotKey struct {
	date string
	time string
}

// DetectConflicts reports every (date, time) shared by more than one booking. Bookings
// with the same owner yield a ConflictTypeOwner entry per owner; otherwise the slot is
// reported once as ConflictTypeSlot. Results are ordered by date, time, then owner.
func DetectConflicts(bookings []Booking) []Conflict {
	bySlot := make(map[slotKey][]Booking)
	for _, b := range bookings {
		key := slotKey{date: b.Date.Format(time.DateOnly), time: b.Time}
		bySlot[key] = append(bySlot[key], b)
	}

	conflicts := make([]Conflict, 0)
	for _, group := range bySlot {
		if len(group) < 2 {
			continue
		}

		byOwner := make(map[string][]int)
		owners := make([]string, 0)
		for _, b := range group {
			key := records.Normalize(b.Owner)
			if _, seen := byOwner[key]; !seen {
				owners = append(owners, b.Owner)
			}
			byOwner[key] = append(byOwner[key], b.Index)
		}

		ownerClash := false
		for _, owner := range owners {
			indexes := byOwner[records.Normalize(owner)]
			if len(indexes) < 2 {
				continue
			}
			ownerClash = true
			conflicts = append(conflicts, Conflict{
				Type:    ConflictTypeOwner,
				Owner:   owner,
				Date:    group[0].Date,
				Time:    group[0].Time,
				Indexes: indexes,
			})
		}
		if ownerClash {
			continue
		}

		indexes := make([]int, 0, len(group))
		for _, b := range group {
			indexes = append(indexes, b.Index)
		}
		conflicts = append(conflicts, Conflict{
			Type:    ConflictTypeSlot,
			Date:    group[0].Date,
			Time:    group[0].Time,
			Indexes: indexes,
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Owner < b.Owner
	})
	return conflicts
}
