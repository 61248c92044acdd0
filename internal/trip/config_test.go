package trip

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_Validates(t *testing.T) {
	t.Parallel()

	t.Run("end before start", func(t *testing.T) {
		t.Parallel()
		_, err := New(Params{Start: date(2025, 3, 5), End: date(2025, 3, 4), Meetings: 3})
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ConfigError to wrap ErrInvalidConfig")
		}
		if cfgErr.Field != "end date" {
			t.Fatalf("expected end date field, got %q", cfgErr.Field)
		}
	})

	t.Run("non-positive meetings", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, -4} {
			_, err := New(Params{Start: date(2025, 3, 5), End: date(2025, 3, 5), Meetings: n})
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected invalid config for %d meetings, got %v", n, err)
			}
		}
	})

	t.Run("missing dates", func(t *testing.T) {
		t.Parallel()
		if _, err := New(Params{End: date(2025, 3, 5), Meetings: 1}); err == nil {
			t.Fatalf("expected error for missing start")
		}
	})
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := New(Params{
		Start:    time.Date(2025, 3, 3, 15, 4, 0, 0, time.UTC),
		End:      date(2025, 3, 5),
		Meetings: 5,
		Owners:   []string{" ", ""},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Name() != DefaultName {
		t.Fatalf("expected default name, got %q", cfg.Name())
	}
	if got := cfg.Owners(); len(got) != 1 || got[0] != FallbackOwner {
		t.Fatalf("expected fallback owner, got %v", got)
	}
	if !cfg.Start().Equal(date(2025, 3, 3)) {
		t.Fatalf("expected start truncated to the day, got %s", cfg.Start())
	}
	if cfg.DayCount() != 3 {
		t.Fatalf("expected 3 days, got %d", cfg.DayCount())
	}
}

func TestConfig_OwnerRoundRobin(t *testing.T) {
	t.Parallel()

	cfg, err := New(Params{Start: date(2025, 3, 3), End: date(2025, 3, 3), Meetings: 4, Owners: []string{"Jason", "Meshari"}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	want := []string{"Jason", "Meshari", "Jason", "Meshari"}
	for i, owner := range want {
		if got := cfg.Owner(i); got != owner {
			t.Fatalf("meeting %d: expected owner %q, got %q", i, owner, got)
		}
	}

	owners := cfg.Owners()
	owners[0] = "mutated"
	if cfg.Owner(0) != "Jason" {
		t.Fatalf("Owners must return a copy")
	}
}

func TestExpandDays(t *testing.T) {
	t.Parallel()

	days := ExpandDays(date(2025, 2, 27), date(2025, 3, 2))
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	if FormatDate(days[2]) != "Mar 01, 2025" {
		t.Fatalf("unexpected third day %s", FormatDate(days[2]))
	}
	if ExpandDays(date(2025, 3, 2), date(2025, 3, 1)) != nil {
		t.Fatalf("expected nil for reversed range")
	}
	if DayCount(date(2025, 3, 2), date(2025, 3, 1)) > 0 {
		t.Fatalf("expected non-positive day count for reversed range")
	}
}

func TestParseDateAndOwners(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2025-03-03", "Mar 03, 2025", " 2025-03-03 "} {
		got, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", raw, err)
		}
		if !got.Equal(date(2025, 3, 3)) {
			t.Fatalf("ParseDate(%q) = %s", raw, got)
		}
	}
	if _, err := ParseDate("03/03/2025"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}

	owners := ParseOwners("Jason, Meshari,, ")
	if len(owners) != 2 || owners[1] != "Meshari" {
		t.Fatalf("unexpected owners %v", owners)
	}
}
