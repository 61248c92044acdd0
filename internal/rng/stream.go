// Package rng provides the single seeded random stream a tracker run draws from.
//
// Every randomized step of a run consumes the same Stream in a fixed order, so equal
// seeds and equal inputs always yield equal output.
package rng

import "math/rand/v2"

// Stream is a sequential, seeded source of draws. It is not safe for concurrent use;
// each run owns its own Stream.
type Stream struct {
	r *rand.Rand
}

// New returns a Stream seeded from seed.
func New(seed int64) *Stream {
	s := uint64(seed)
	return &Stream{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// IntN returns a draw in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int {
	return s.r.IntN(n)
}

// Sample returns k distinct indices from [0, n) in draw order.
func (s *Stream) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Shuffle permutes n elements in place through swap.
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

// Choice returns one element of options. options must be non-empty.
func Choice[T any](s *Stream, options []T) T {
	return options[s.IntN(len(options))]
}
