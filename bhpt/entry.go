package bhpt

import "fmt"

// Insert activates a free entry, optionally seeding its history with the
// given bits (oldest first, i.e. left-to-right = oldest-to-newest, matching
// spec.md §4.6), and returns its index. When the table is full, behavior
// depends on AutoRemove: if disabled, ErrNoCapacity; if enabled, the entry
// with strictly minimum cached weight is evicted (random tiebreak among
// ties) and its index reused.
func (t *Table) Insert(initial ...uint8) (int, error) {
	if t.capacity == 0 {
		return 0, fmt.Errorf("%w: table has zero capacity", ErrNoCapacity)
	}
	e := t.valid.firstFree(t.capacity)
	if e < 0 {
		if !t.cfg.AutoRemove {
			return 0, fmt.Errorf("%w", ErrNoCapacity)
		}
		e = t.evictMinimumWeight()
	}
	t.activate(e)
	for _, b := range initial {
		t.pushLocked(e, b)
	}
	return e, nil
}

// Remove deactivates entry e. Removing an already-free entry is a no-op,
// per spec.md §4.6 and property 6 (idempotence).
func (t *Table) Remove(index int) error {
	if index < 0 || index >= t.capacity {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	t.removeLocked(index)
	return nil
}

// removeLocked is Remove's body shared with eviction, skipping the bounds
// check the caller has already performed.
func (t *Table) removeLocked(e int) {
	if !t.valid.clearValid(e) {
		return // already free: no-op
	}
	t.history.clear(e)
	t.weights[e] = 0
	t.dirty.clearEntry(e)
	t.dirty.markDistribution()
}

func (t *Table) activate(e int) {
	if t.valid.setValid(e) {
		// A newly valid entry's weight comes from its (all-zero) history and
		// the current MWSP, so an MWSP floor applies before any push.
		if t.cfg.Defer {
			t.dirty.markEntry(e)
		} else {
			t.recomputeWeight(e)
		}
		t.dirty.markDistribution()
	}
}

// evictMinimumWeight recomputes any dirty weights, finds the set of valid
// entries at the minimum cached weight, picks one uniformly at random, and
// removes it, returning its index for reuse.
func (t *Table) evictMinimumWeight() int {
	if t.cfg.Defer {
		t.dirty.forEachDirty(t.capacity, func(e int) { t.recomputeWeight(e) })
		t.dirty.clearAllEntries()
	}
	min := float64(0)
	first := true
	var candidates []int
	for e := 0; e < t.capacity; e++ {
		if !t.valid.isValid(e) {
			continue
		}
		w := t.weights[e]
		switch {
		case first || w < min:
			min = w
			candidates = candidates[:0]
			candidates = append(candidates, e)
			first = false
		case w == min:
			candidates = append(candidates, e)
		}
	}
	victim := candidates[t.rng.IntN(len(candidates))]
	t.removeLocked(victim)
	return victim
}
