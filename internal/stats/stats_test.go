package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencies_OrderAndBlank(t *testing.T) {
	t.Parallel()

	got := Frequencies([]string{"Tech", "", "Energy", "Tech", "", "Banking"})
	assert.Equal(t, []Count{
		{Key: BlankKey, Count: 2},
		{Key: "Tech", Count: 2},
		{Key: "Banking", Count: 1},
		{Key: "Energy", Count: 1},
	}, got)
	assert.Empty(t, Frequencies(nil))
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	summary := Aggregate(Input{
		AccountsLoaded: 30,
		ContactsLoaded: 0,
		Days:           2,
		Owners:         []string{"Jason", "Meshari", "Jason"},
		Statuses:       []string{"Proposed", "Done", "Proposed"},
		Industries:     []string{"", "", "Tech"},
	})

	assert.Equal(t, 3, summary.Meetings)
	assert.Equal(t, 30, summary.AccountsLoaded)
	assert.Equal(t, 2, summary.Days)
	assert.Equal(t, 2, Lookup(summary.OwnerCounts, "Jason"))
	assert.Equal(t, 2, Lookup(summary.StatusCounts, "Proposed"))
	assert.Equal(t, 2, Lookup(summary.IndustryCounts, BlankKey))
	assert.Equal(t, 0, Lookup(summary.IndustryCounts, "Energy"))
}
