package scheduler

import (
	"testing"
	"time"
)

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	t.Run("owner overlap produces conflict", func(t *testing.T) {
		t.Parallel()
		conflicts := DetectConflicts([]Booking{
			{Index: 0, Owner: "Jason", Date: day, Time: "09:00"},
			{Index: 1, Owner: "jason", Date: day, Time: "09:00"},
			{Index: 2, Owner: "Meshari", Date: day, Time: "09:00"},
		})
		if len(conflicts) != 1 {
			t.Fatalf("expected 1 conflict, got %d: %+v", len(conflicts), conflicts)
		}
		got := conflicts[0]
		if got.Type != ConflictTypeOwner || got.Owner != "Jason" {
			t.Fatalf("unexpected conflict %+v", got)
		}
		if len(got.Indexes) != 2 || got.Indexes[0] != 0 || got.Indexes[1] != 1 {
			t.Fatalf("expected indexes [0 1], got %v", got.Indexes)
		}
	})

	t.Run("shared slot across owners produces conflict", func(t *testing.T) {
		t.Parallel()
		conflicts := DetectConflicts([]Booking{
			{Index: 0, Owner: "Jason", Date: next, Time: "10:30"},
			{Index: 1, Owner: "Meshari", Date: next, Time: "10:30"},
			{Index: 2, Owner: "Jason", Date: day, Time: "11:00"},
			{Index: 3, Owner: "Meshari", Date: day, Time: "11:00"},
		})
		if len(conflicts) != 2 {
			t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
		}
		if conflicts[0].Type != ConflictTypeSlot || !conflicts[0].Date.Equal(day) {
			t.Fatalf("expected earliest slot conflict first, got %+v", conflicts[0])
		}
	})

	t.Run("non-overlapping bookings yield no conflicts", func(t *testing.T) {
		t.Parallel()
		conflicts := DetectConflicts([]Booking{
			{Index: 0, Owner: "Jason", Date: day, Time: "09:00"},
			{Index: 1, Owner: "Jason", Date: day, Time: "09:30"},
			{Index: 2, Owner: "Jason", Date: next, Time: "09:00"},
		})
		if len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %+v", conflicts)
		}
	})
}
