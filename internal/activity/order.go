package activity

import (
	"cmp"
	"slices"

	"github.com/gabapcia/blockfeed/internal/pkg/types"
)

// Compare orders transactions newest first: by block timestamp descending,
// then by transaction index descending.
func Compare(a, b Transaction) int {
	if c := cmp.Compare(b.BlockTimestamp, a.BlockTimestamp); c != 0 {
		return c
	}
	return cmp.Compare(b.TransactionIndex, a.TransactionIndex)
}

// SortAndDedupe returns a new slice sorted with Compare in which every hash
// appears once. The sort is stable, so among equal keys the copy that came
// first in txs is the one kept. Applying it to its own output is a no-op.
func SortAndDedupe(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, Compare)

	seen := types.NewSet[string]()
	out := sorted[:0]
	for _, tx := range sorted {
		key := tx.Key()
		if seen.Has(key) {
			continue
		}
		seen.Add(key)
		out = append(out, tx)
	}

	return out
}

// Merge combines existing with incoming. Copies already in existing win over
// incoming duplicates.
func Merge(existing, incoming []Transaction) []Transaction {
	all := make([]Transaction, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	return SortAndDedupe(all)
}

// Hashes returns the set of keys of txs.
func Hashes(txs []Transaction) types.Set[string] {
	set := make(types.Set[string], len(txs))
	for _, tx := range txs {
		set.Add(tx.Key())
	}
	return set
}

// Count returns how many of txs satisfy keep. A nil keep counts everything.
func Count(txs []Transaction, keep func(Transaction) bool) int {
	if keep == nil {
		return len(txs)
	}

	n := 0
	for _, tx := range txs {
		if keep(tx) {
			n++
		}
	}
	return n
}
