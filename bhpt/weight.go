package bhpt

import "math"

// ═══════════════════════════════════════════════════════════════════════════
// THE WEIGHT ENGINE
// ═══════════════════════════════════════════════════════════════════════════
//
// An entry's weight estimates how likely its next observation is to be 1,
// from the most recent N bits of its history. The formula (spec.md §4.3):
//
//	w_e = Σ_{n=0..N-1} 2^(3n/2) · effective(n)
//	effective(n) = 1 if n == mwsp (mwsp >= 0), else history bit n
//
// WHY A GEOMETRIC COEFFICIENT TABLE:
// ───────────────────────────────────
// Position n in the sum is the n-th most recent bit, so the coefficients
// climb geometrically with n: the newest bit (n=0) contributes only 1, the
// oldest considered bit (n=N-1) contributes up to 2^(3(N-1)/2). A history of
// mostly-stale 1s therefore still outweighs a single fresh 1 — a long streak
// of truthy outcomes several pushes back is not forgotten the instant the
// next push is 0. The exponent 3/2 is the one free parameter of the scheme;
// it is fixed, not tuned, per spec.md (no online learning — that is explicit
// future work, not implemented here).
//
// WHY MWSP (Minimal Weight State Position):
// ───────────────────────────────────────────
// With every history bit 0, w_e is exactly 0, and a weight-0 entry can never
// be selected — useful for "has never fired," useless for "needs a chance to
// fire at all." MWSP pins one position's effective bit to 1 regardless of
// what was actually observed there, giving every valid entry a weight floor
// strictly above 0 so it remains selectable. -1 disables the floor.
//
// WHY A SWAPPABLE weightFunc:
// ─────────────────────────────
// spec.md §9 names a learned (neural) weight function as a roadmap item. The
// weight computation is isolated behind the weightFunc type precisely so a
// future implementation can replace defaultWeight's formula without touching
// dirty tracking, the distribution cache, or the selector — none of those
// care how a weight was derived, only that recomputeWeight produced one.
//
// ═══════════════════════════════════════════════════════════════════════════

// weightCoefficients precomputes W[n] = 2^(3n/2) for n in [0, N), so a row's
// weight is a dot product against a fixed table rather than N pow() calls.
// Coefficients grow geometrically with age: position 0 (most recent)
// carries the least weight, position N-1 the most.
func weightCoefficients(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = math.Pow(2, float64(3*i)/2)
	}
	return w
}

// WeightCoefficients exposes the default weight engine's W[n] = 2^(3n/2)
// table for n in [0, n), so external collaborators (such as bhpt/pgc) can
// reason about entry weights without reimplementing the formula from
// spec.md §4.3.
func WeightCoefficients(n int) []float64 {
	return weightCoefficients(n)
}

// weightFunc computes a single entry's weight from its considered history
// bits. It is the one injection point spec.md §9 calls out for a future
// learned weight function: swap the implementation without touching dirty
// tracking, the distribution cache, or the selector.
type weightFunc func(bits []uint8, coeffs []float64, mwsp int) float64

// defaultWeight implements spec.md §4.3: sum coeffs[n] * effective(n), where
// effective(n) is 1 when n == mwsp (mwsp >= 0), else the bit itself.
func defaultWeight(bits []uint8, coeffs []float64, mwsp int) float64 {
	var w float64
	for n, c := range coeffs {
		s := bits[n]
		if n == mwsp {
			s = 1
		}
		if s != 0 {
			w += c
		}
	}
	return w
}
