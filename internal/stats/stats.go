// Package stats aggregates summary counts over a generated tracker.
package stats

import "sort"

// BlankKey labels rows whose grouping value is blank or absent.
const BlankKey = "(blank)"

// Count is one row of a frequency table.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary holds the run statistics.
type Summary struct {
	AccountsLoaded int     `json:"accounts_loaded"`
	ContactsLoaded int     `json:"contacts_loaded"`
	Meetings       int     `json:"meetings"`
	Days           int     `json:"days"`
	OwnerCounts    []Count `json:"owner_counts"`
	StatusCounts   []Count `json:"status_counts"`
	IndustryCounts []Count `json:"industry_counts"`
}

// Input is what Aggregate counts over. The slices are read in parallel: one owner,
// status and industry value per meeting.
type Input struct {
	AccountsLoaded int
	ContactsLoaded int
	Days           int
	Owners         []string
	Statuses       []string
	Industries     []string
}

// Aggregate builds a Summary. Frequency tables are ordered by count descending, then
// key ascending.
func Aggregate(in Input) Summary {
	return Summary{
		AccountsLoaded: in.AccountsLoaded,
		ContactsLoaded: in.ContactsLoaded,
		Meetings:       len(in.Owners),
		Days:           in.Days,
		OwnerCounts:    Frequencies(in.Owners),
		StatusCounts:   Frequencies(in.Statuses),
		IndustryCounts: Frequencies(in.Industries),
	}
}

// Frequencies counts values, mapping blank values to BlankKey.
func Frequencies(values []string) []Count {
	tally := make(map[string]int)
	for _, v := range values {
		if v == "" {
			v = BlankKey
		}
		tally[v]++
	}
	out := make([]Count, 0, len(tally))
	for key, n := range tally {
		out = append(out, Count{Key: key, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Lookup returns the count recorded for key, or 0.
func Lookup(counts []Count, key string) int {
	for _, c := range counts {
		if c.Key == key {
			return c.Count
		}
	}
	return 0
}
