package bhpt

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// ═══════════════════════════════════════════════════════════════════════════
// THE SELECTOR
// ═══════════════════════════════════════════════════════════════════════════
//
// Select answers "which entry, at random, weighted by its current weight?"
// It does so the textbook way: build the prefix-sum ("cumulative") array
// C[0..I] from the weight vector, draw u uniformly from [0, C[I]), and binary
// search for the smallest k with C[k+1] > u. An entry e's share of the
// interval [C[e], C[e+1]) is exactly its weight, so the probability of
// landing in it is w_e / total — inverse-CDF sampling.
//
// WHY CACHE THE CUMULATIVE ARRAY AT ALL:
// ───────────────────────────────────────
// Building C is O(I); searching it is O(log I). A caller that selects
// repeatedly between pushes (a typical bandit-style inner loop: push an
// outcome, then make several selections before the next outcome arrives)
// should not pay the O(I) rebuild on every one of those selections. The
// table-level dirty flag (dirty.go) marks the cache stale exactly when a
// push, insert, remove, or MWSP change could have moved a weight; Select
// rebuilds iff that flag is set, so a run of Selects with no intervening
// mutation costs only the PRNG draw and the binary search.
//
// WHY THE TABLE OWNS ITS OWN PRNG:
// ───────────────────────────────────
// A process-global generator would make two tables seeded identically but
// driven by different call interleavings diverge, and would make test
// determinism (spec.md §5, §8 property 4) depend on global state no caller
// controls. Each Table seeds its own math/rand/v2 source at construction
// (or, if unset, from crypto/rand once, recorded via Table.Seed() for later
// reproduction) so identical seed + identical call sequence always produces
// identical draws, independent of anything else happening in the process.
//
// ═══════════════════════════════════════════════════════════════════════════

// goldenRatioMix is the golden-ratio prime used elsewhere in the pack for
// splitting a single seed into well-distributed bit patterns (the same
// constant a hash-mixing step would use); here it derives a PCG's second
// stream parameter from the table's single int64 seed.
const goldenRatioMix = 0x9E3779B97F4A7C15

func newRNG(seed int64) *rand.Rand {
	s1 := uint64(seed)
	s2 := s1 ^ goldenRatioMix
	return rand.New(rand.NewPCG(s1, s2))
}

// rebuildDistribution recomputes any dirty weights (deferred mode only) and
// rebuilds the cumulative-weight array, per spec.md §4.5 step 1.
func (t *Table) rebuildDistribution() {
	if t.cfg.Defer {
		t.dirty.forEachDirty(t.capacity, func(e int) {
			t.recomputeWeight(e)
		})
		t.dirty.clearAllEntries()
	}
	var total float64
	t.cumulative[0] = 0
	for e := 0; e < t.capacity; e++ {
		total += t.weights[e]
		t.cumulative[e+1] = total
	}
	t.total = total
	t.dirty.clearDistribution()
}

// Select returns a valid index chosen with probability proportional to its
// current weight.
func (t *Table) Select() (int, error) {
	if t.dirty.isDistributionStale() {
		t.rebuildDistribution()
	}
	if t.total == 0 {
		return 0, fmt.Errorf("%w", ErrNoSelectableEntry)
	}
	u := t.rng.Float64() * t.total
	return t.indexForDraw(u), nil
}

// SelectMany draws n indices from the distribution current at the time of
// the call, rebuilding the cumulative array at most once regardless of n
// (SPEC_FULL.md §11's get_many equivalent).
func (t *Table) SelectMany(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0, got %d", ErrInvalidArgument, n)
	}
	if t.dirty.isDistributionStale() {
		t.rebuildDistribution()
	}
	if t.total == 0 {
		return nil, fmt.Errorf("%w", ErrNoSelectableEntry)
	}
	out := make([]int, n)
	for i := range out {
		u := t.rng.Float64() * t.total
		out[i] = t.indexForDraw(u)
	}
	return out, nil
}

// indexForDraw returns the smallest k such that cumulative[k+1] > u, via
// binary search over the prefix-sum array (inverse-CDF sampling).
func (t *Table) indexForDraw(u float64) int {
	// sort.Search finds the smallest index i in [0, capacity) for which
	// cumulative[i+1] > u; cumulative is non-decreasing by construction.
	return sort.Search(t.capacity, func(i int) bool {
		return t.cumulative[i+1] > u
	})
}
