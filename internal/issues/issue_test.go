package issues

import "testing"

func TestLog_AppendsInOrder(t *testing.T) {
	t.Parallel()

	log := NewLog()
	log.Warn(EntityAccount, "C1", "Primary Contact Email", "first")
	log.Block(EntityAccount, "(unknown)", "Companies", "second")
	log.Warn(EntityContact, "C1", "Email", "third")

	items := log.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Message != want {
			t.Fatalf("expected issue %d to be %q, got %q", i, want, items[i].Message)
		}
	}
	if got := log.Count(SeverityBlocker); got != 1 {
		t.Fatalf("expected 1 blocker, got %d", got)
	}
	if got := log.Count(SeverityWarning); got != 2 {
		t.Fatalf("expected 2 warnings, got %d", got)
	}

	items[0].Message = "mutated"
	if log.Items()[0].Message != "first" {
		t.Fatalf("Items must return a copy")
	}
}

func TestLog_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var log *Log
	if log.Len() != 0 || log.Items() != nil || log.Count(SeverityWarning) != 0 {
		t.Fatalf("expected nil log to behave as empty")
	}
}
