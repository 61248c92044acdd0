// Package selection picks the accounts a trip visits.
package selection

import (
	"github.com/example/trip-tracker/internal/records"
	"github.com/example/trip-tracker/internal/rng"
)

// Pick returns up to n accounts from table.
//
// When city is non-blank and the export carries an HQ City column, accounts whose HQ
// city contains city (ignoring case) form the pool, provided there are at least n of
// them; otherwise every account is eligible. A pool of n or fewer accounts is returned
// whole in source order without drawing from stream. Larger pools are sampled without
// replacement and returned in draw order.
func Pick(table records.AccountTable, n int, city string, stream *rng.Stream) []records.Account {
	if n <= 0 {
		return nil
	}

	pool := table.Accounts
	if records.Clean(city) != "" && table.HasHQCity {
		local := make([]records.Account, 0, len(pool))
		for _, account := range pool {
			if records.ContainsFold(account.HQCity, city) {
				local = append(local, account)
			}
		}
		if len(local) >= n {
			pool = local
		}
	}

	if len(pool) <= n {
		out := make([]records.Account, len(pool))
		copy(out, pool)
		return out
	}

	indices := stream.Sample(len(pool), n)
	out := make([]records.Account, 0, n)
	for _, idx := range indices {
		out = append(out, pool[idx])
	}
	return out
}
