package mcda

import (
	"fmt"
	"sort"
)

// Borda awards n-1-rank points to each candidate in tally, ranking by score
// descending. Equal scores keep their original order, so the lower index
// ranks higher. The tally is keyed by ids and accumulates across calls; it
// is not safe for concurrent use.
func Borda[K comparable](scores []float64, ids []K, tally map[K]int) error {
	if len(scores) != len(ids) {
		return fmt.Errorf("%w: %d scores for %d ids", ErrInvalidInput, len(scores), len(ids))
	}
	if tally == nil {
		return fmt.Errorf("%w: nil tally", ErrInvalidInput)
	}

	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	for rank, idx := range order {
		tally[ids[idx]] += n - 1 - rank
	}
	return nil
}
