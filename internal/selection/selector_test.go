package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/rng"
)

func accountTable(cities ...string) records.AccountTable {
	rows := make([][]string, 0, len(cities))
	for i, city := range cities {
		rows = append(rows, []string{fmt.Sprintf("C%d", i), fmt.Sprintf("Account %d", i), city})
	}
	return records.AccountsFromTable(records.NewTable(
		[]string{records.ColumnCompanyID, records.ColumnCompanies, records.ColumnHQCity},
		rows,
	))
}

func names(accounts []records.Account) []string {
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Name)
	}
	return out
}

func TestPick_SmallPoolKeepsSourceOrderWithoutDraws(t *testing.T) {
	t.Parallel()

	table := accountTable("Riyadh", "Jeddah", "Dammam")
	stream := rng.New(42)
	picked := Pick(table, 5, "", stream)
	assert.Equal(t, []string{"Account 0", "Account 1", "Account 2"}, names(picked))

	// The stream must be untouched: it still matches a fresh stream.
	assert.Equal(t, rng.New(42).IntN(1000), stream.IntN(1000))
}

func TestPick_SizeAndDistinctness(t *testing.T) {
	t.Parallel()

	cities := make([]string, 30)
	for i := range cities {
		cities[i] = "Riyadh"
	}
	table := accountTable(cities...)
	picked := Pick(table, 12, "", rng.New(42))
	require.Len(t, picked, 12)

	seen := map[int]bool{}
	for _, a := range picked {
		require.False(t, seen[a.Row], "row %d picked twice", a.Row)
		seen[a.Row] = true
	}
}

func TestPick_Deterministic(t *testing.T) {
	t.Parallel()

	table := accountTable("A", "B", "C", "D", "E", "F", "G", "H")
	first := Pick(table, 4, "", rng.New(9))
	second := Pick(table, 4, "", rng.New(9))
	assert.Equal(t, names(first), names(second))
}

func TestPick_CityPreference(t *testing.T) {
	t.Parallel()

	table := accountTable("Riyadh", "Jeddah", "riyadh north", "Dammam", "RIYADH", "Jeddah")

	t.Run("restricted pool large enough", func(t *testing.T) {
		t.Parallel()
		picked := Pick(table, 3, "Riyadh", rng.New(1))
		require.Len(t, picked, 3)
		for _, a := range picked {
			assert.True(t, records.ContainsFold(a.HQCity, "riyadh"), "unexpected city %q", a.HQCity)
		}
	})

	t.Run("restricted pool too small falls back", func(t *testing.T) {
		t.Parallel()
		picked := Pick(table, 5, "Riyadh", rng.New(1))
		require.Len(t, picked, 5)
		nonLocal := 0
		for _, a := range picked {
			if !records.ContainsFold(a.HQCity, "riyadh") {
				nonLocal++
			}
		}
		assert.GreaterOrEqual(t, nonLocal, 2, "only three accounts are local")
	})

	t.Run("no city column ignores filter", func(t *testing.T) {
		t.Parallel()
		noCity := records.AccountsFromTable(records.NewTable(
			[]string{records.ColumnCompanies},
			[][]string{{"A"}, {"B"}},
		))
		assert.Equal(t, []string{"A", "B"}, names(Pick(noCity, 5, "Riyadh", rng.New(1))))
	})
}

func TestPick_NonPositive(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Pick(accountTable("A"), 0, "", rng.New(1)))
}
