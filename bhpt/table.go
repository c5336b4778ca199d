// ═══════════════════════════════════════════════════════════════════════════
// BINARY HISTORY PROBABILITY TABLE (BHPT)
// ═══════════════════════════════════════════════════════════════════════════
//
// OVERVIEW:
// ─────────
// A BHPT tracks, for each of up to I tracked variables ("entries"), the last
// L binary observations made for that variable — a per-entry shift register,
// newest bit first. From that history it derives a non-negative weight per
// entry, and answers one question, over and over, cheaply: "which entry,
// chosen at random with probability proportional to its weight?"
//
// It is the selection substrate for a stochastic policy where "this entry
// has recently observed truthy outcomes" should make that entry more likely
// to be picked next time — e.g. favoring candidates (genetic code fragments,
// bandit arms, cache lines) that have recently "worked."
//
// THE THREE MOVING PARTS:
// ────────────────────────
//   1. History  — bit-packed I×L register file (historyStore); a push is a
//      one-bit left shift of a row, oldest bit discarded.
//   2. Weight   — a fixed coefficient table W[n] = 2^(3n/2) dotted against the
//      top N history bits of a row (weight.go); more distant history
//      contributes more to the sum, recent history less, so an entry's
//      weight changes gradually rather than swinging on a single push.
//   3. Selector — a cumulative-weight array built once per "generation" of
//      pushes and searched by inverse-CDF sampling against a uniform draw
//      (selector.go); rebuilt lazily, only when something actually changed.
//
// Validity, dirty-tracking, and entry management are each a thin bitmap or
// bookkeeping layer around these three; see validity.go, dirty.go, entry.go.
//
// WHY A DEFER/DIRTY DISCIPLINE AT ALL:
// ─────────────────────────────────────
// Recomputing one entry's weight is O(N); rebuilding the whole cumulative
// array is O(I). A caller pushing thousands of observations between
// selections (the common training-loop shape) should pay neither cost per
// push. Deferred mode batches weight recomputation to the next Select call;
// the table-level dirty flag additionally makes repeated Select calls with no
// intervening mutation free beyond the PRNG draw and binary search.
//
// ═══════════════════════════════════════════════════════════════════════════

// Package bhpt implements the Binary History Probability Table: a
// fixed-capacity structure that keeps a shift-register history of recent
// binary observations per entry and supports weighted random selection of
// an entry index, where the weight is a monotone function of that entry's
// recent history.
package bhpt

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Table is a Binary History Probability Table. It is not safe for
// concurrent use; callers sharing a Table across goroutines must provide
// their own mutual exclusion (spec.md §5).
type Table struct {
	cfg Config

	capacity      int
	historyLength int
	depth         int

	history    *historyStore
	valid      *validityState
	dirty      *dirtyState
	weights    []float64
	coeffs     []float64
	cumulative []float64
	total      float64

	mwsp    int
	compute weightFunc
	rng     *rand.Rand
	seed    int64
	logger  zerolog.Logger
}

// New constructs a Table from cfg. ConsiderationDepth defaults to
// HistoryLength when left unset, and MWSP defaults to -1 unless cfg.MWSPSet
// is true, matching spec.md §6's construction defaults.
func New(cfg Config) (*Table, error) {
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	seed := cfg.Seed
	if !cfg.SeedSet {
		seed = randomSeed()
	}

	t := &Table{
		cfg:           cfg,
		capacity:      cfg.Capacity,
		historyLength: cfg.HistoryLength,
		depth:         cfg.ConsiderationDepth,
		history:       newHistoryStore(cfg.Capacity, cfg.HistoryLength),
		valid:         newValidityState(cfg.Capacity),
		dirty:         newDirtyState(cfg.Capacity),
		weights:       make([]float64, cfg.Capacity),
		coeffs:        weightCoefficients(cfg.ConsiderationDepth),
		cumulative:    make([]float64, cfg.Capacity+1),
		mwsp:          cfg.MWSP,
		compute:       defaultWeight,
		seed:          seed,
		logger:        logger,
	}
	t.rng = newRNG(seed)

	if math.Log2(float64(cfg.Capacity))+float64(cfg.ConsiderationDepth)*2.0/3.0 > 56 {
		t.logger.Warn().
			Int("capacity", cfg.Capacity).
			Int("consideration_depth", cfg.ConsiderationDepth).
			Msg("bhpt: capacity and consideration depth may exceed float64's safe accumulation range, reducing the influence of the oldest states")
	}

	return t, nil
}

func randomSeed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Capacity returns I, the number of entries the table holds.
func (t *Table) Capacity() int { return t.capacity }

// HistoryLength returns L, the number of bits kept per entry.
func (t *Table) HistoryLength() int { return t.historyLength }

// ConsiderationDepth returns N, the number of most-recent bits the weight
// function considers.
func (t *Table) ConsiderationDepth() int { return t.depth }

// Seed returns the seed the table's PRNG was constructed with, letting a
// caller log and later reproduce a call sequence.
func (t *Table) Seed() int64 { return t.seed }

// String renders the table's configuration, mirroring the original
// implementation's __repr__.
func (t *Table) String() string {
	return fmt.Sprintf("bhpt.Table(capacity=%d, history_length=%d, consideration_depth=%d, mwsp=%d, defer=%t, auto_remove=%t)",
		t.capacity, t.historyLength, t.depth, t.mwsp, t.cfg.Defer, t.cfg.AutoRemove)
}

// HistoryOf returns a position-ordered copy of index's history (position 0
// is the most recent push). A valid-but-never-written entry, and an invalid
// entry, both read as all zero.
func (t *Table) HistoryOf(index int) ([]uint8, error) {
	if index < 0 || index >= t.capacity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return t.history.readRow(index), nil
}

// Push records bit as the most recent state of index, implicitly
// revalidating index if it was free (spec.md §4.7, §9).
func (t *Table) Push(index int, bit uint8) error {
	if index < 0 || index >= t.capacity {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	if bit > 1 {
		return fmt.Errorf("%w: state must be 0 or 1, got %d", ErrInvalidArgument, bit)
	}
	t.pushLocked(index, bit)
	return nil
}

// pushLocked is Push's body shared with Insert's initial-state seeding.
func (t *Table) pushLocked(index int, bit uint8) {
	t.activate(index)
	t.history.shiftIn(index, bit)
	t.dirty.markDistribution()
	if t.cfg.Defer {
		t.dirty.markEntry(index)
	} else {
		t.recomputeWeight(index)
	}
}

// recomputeWeight recomputes the cached weight of entry e from its current
// history. An invalid entry gets weight 0; SetMWSP and the bulk recompute of
// dirty entries may pass invalid indices, which is why this is checked here.
func (t *Table) recomputeWeight(e int) {
	if !t.valid.isValid(e) {
		t.weights[e] = 0
		return
	}
	row := t.history.rows[e]
	bits := make([]uint8, t.depth)
	for n := range bits {
		word := n / 64
		b := uint(n % 64)
		bits[n] = uint8((row[word] >> b) & 1)
	}
	t.weights[e] = t.compute(bits, t.coeffs, t.mwsp)
}

// SetMWSP changes the Minimal Weight State Position. m must satisfy
// -1 <= m < ConsiderationDepth(); -1 disables it. Every entry's weight is
// marked for recomputation since the weight function itself changed.
func (t *Table) SetMWSP(m int) error {
	if m < -1 || m >= t.depth {
		return fmt.Errorf("%w: mwsp must be in [-1, %d), got %d", ErrInvalidArgument, t.depth, m)
	}
	t.mwsp = m
	for e := 0; e < t.capacity; e++ {
		t.dirty.markEntry(e)
	}
	if !t.cfg.Defer {
		for e := 0; e < t.capacity; e++ {
			t.recomputeWeight(e)
		}
		t.dirty.clearAllEntries()
	}
	t.dirty.markDistribution()
	return nil
}

// SetDefer toggles deferred weight recomputation. It does not itself
// invalidate any cached weight, only the cost schedule of subsequent pushes.
// Turning deferred mode off first recomputes any weights still pending.
func (t *Table) SetDefer(defer_ bool) {
	if !defer_ {
		t.dirty.forEachDirty(t.capacity, func(e int) { t.recomputeWeight(e) })
		t.dirty.clearAllEntries()
	}
	t.cfg.Defer = defer_
}
