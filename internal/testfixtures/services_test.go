package testfixtures

import (
	"context"
	"testing"

	"github.com/example/trip-tracker/internal/application"
)

func TestServiceFactoryNewTrackerService(t *testing.T) {
	factory := NewServiceFactory()
	svc := factory.NewTrackerService(nil)

	result, err := svc.Generate(context.Background(), application.GenerateParams{
		Accounts: Accounts(NewAccountFixture(), NewAccountFixture()),
		Trip:     NewTrip(WithMeetings(2)),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.RunID != "run-0001" {
		t.Fatalf("expected run-0001, got %q", result.RunID)
	}
	if !result.GeneratedAt.Equal(ReferenceTime()) {
		t.Fatalf("expected reference time, got %v", result.GeneratedAt)
	}
	if len(result.Meetings) != 2 {
		t.Fatalf("expected 2 meetings, got %d", len(result.Meetings))
	}
}

func TestRecordingPublisher(t *testing.T) {
	pub := &RecordingPublisher{}
	got, err := pub.Publish(context.Background(), "trackers/run-0001/Trip.xlsx", "text/plain", []byte("x"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got.Location != "memory://trackers/run-0001/Trip.xlsx" {
		t.Fatalf("unexpected location %q", got.Location)
	}
	if uploads := pub.Uploads(); len(uploads) != 1 || string(uploads[0].Body) != "x" {
		t.Fatalf("unexpected uploads %+v", uploads)
	}
}

func TestDropColumns(t *testing.T) {
	table := DropColumns(AccountsTable(NewAccountFixture(WithHQCity("Jeddah"))), "HQ City")
	if table.Has("HQ City") {
		t.Fatalf("HQ City should be dropped")
	}
	if table.Len() != 1 || table.Value(0, "Companies") == "" {
		t.Fatalf("rows not preserved: %v", table.Columns())
	}
}
