// Package pgc is a minimal, faithful stand-in for the "GC insertion"
// subsystem spec.md names as explicitly out of the BHPT core's scope (§1):
// an external collaborator that selects candidates ("pGCs" in the original
// evolutionary-computation system) weighted by a fitness score, using a
// bhpt.Table purely through its public contract.
//
// It never reaches into bhpt's internals; everything here is expressible by
// any consumer of the package.
package pgc

import (
	"github.com/Shapedsundew9/egp-physics/bhpt"
)

// FitnessToHistory maps a fitness value onto a position-ordered history bit
// pattern (bits[c] is weighted by coeffs[c]) by greedily consuming
// coefficients from the smallest upward while the remaining fitness strictly
// exceeds the next coefficient. The set bits are therefore the longest prefix
// of positions whose coefficient sum is strictly below fitness; this is not
// in general the largest representable weight <= fitness. This mirrors
// the original system's lookup-table construction
// (egp_physics/pgc_bhpt.py's _PGC_FITNESS_MAPPING_TO_HISTORY), generalized
// to an arbitrary coefficient table rather than hardcoding 2^n.
func FitnessToHistory(fitness float64, coeffs []float64) []uint8 {
	bits := make([]uint8, len(coeffs))
	remaining := fitness
	for c, coeff := range coeffs {
		if remaining > coeff {
			remaining -= coeff
			bits[c] = 1
		}
	}
	return bits
}

// FitnessGranularity is the number of discrete fitness levels the lookup
// table below resolves, matching the original implementation's choice of
// 128 levels as "accurate enough" for a fitness computed over all time
// rather than a local environment.
const FitnessGranularity = 128

// FitnessLookupTable precomputes FitnessToHistory for FitnessGranularity
// evenly spaced fitness levels between 0 and the sum of coeffs, so mapping a
// candidate's fitness at selection time is an O(1) index instead of the
// O(N) greedy pass.
func FitnessLookupTable(coeffs []float64) [][]uint8 {
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	table := make([][]uint8, FitnessGranularity)
	for i := range table {
		fitness := sum * float64(i) / float64(FitnessGranularity-1)
		table[i] = FitnessToHistory(fitness, coeffs)
	}
	return table
}

// Candidate is a reference to the caller's domain object (a pGC, in the
// original system) being tracked by a Pool entry.
type Candidate any

// Pool wraps a bhpt.Table to select candidates weighted by a fitness score
// that was recorded once at insertion and then updated by subsequent
// outcomes, via the table's ordinary Push/Select contract. Pool keeps the
// out-of-band mapping from table index to Candidate; the core knows nothing
// about it.
type Pool struct {
	table  *bhpt.Table
	lookup [][]uint8
	refs   []Candidate
}

// NewPool builds a Pool over a freshly constructed bhpt.Table. cfg's
// ConsiderationDepth sets how many coefficients, and so how many history
// bits, each fitness lookup-table pattern covers.
func NewPool(cfg bhpt.Config) (*Pool, error) {
	t, err := bhpt.New(cfg)
	if err != nil {
		return nil, err
	}
	coeffs := bhpt.WeightCoefficients(t.ConsiderationDepth())
	return &Pool{
		table:  t,
		lookup: FitnessLookupTable(coeffs),
		refs:   make([]Candidate, t.Capacity()),
	}, nil
}

// Add inserts ref into the pool with an initial history derived from
// fitness (a value in [0,1]) via the precomputed lookup table.
func (p *Pool) Add(ref Candidate, fitness float64) (int, error) {
	level := int(fitness * float64(FitnessGranularity-1))
	if level < 0 {
		level = 0
	}
	if level > FitnessGranularity-1 {
		level = FitnessGranularity - 1
	}
	// The lookup pattern is position-ordered (position 0 first) while Insert
	// takes bits oldest-first, so feed it in reverse.
	pattern := p.lookup[level]
	initial := make([]uint8, len(pattern))
	for i, b := range pattern {
		initial[len(pattern)-1-i] = b
	}
	idx, err := p.table.Insert(initial...)
	if err != nil {
		return 0, err
	}
	p.refs[idx] = ref
	return idx, nil
}

// Reward pushes a success/failure observation onto idx's history.
func (p *Pool) Reward(idx int, success bool) error {
	var bit uint8
	if success {
		bit = 1
	}
	return p.table.Push(idx, bit)
}

// Select returns the Candidate chosen by the underlying table's weighted
// selection.
func (p *Pool) Select() (Candidate, error) {
	idx, err := p.table.Select()
	if err != nil {
		return nil, err
	}
	return p.refs[idx], nil
}
