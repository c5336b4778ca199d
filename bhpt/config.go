package bhpt

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Config holds the construction-time parameters of a Table. All fields are
// immutable once New returns a *Table; MWSP and Defer are changed afterward
// through Table.SetMWSP and Table.SetDefer, never by mutating the Config.
type Config struct {
	// Capacity is the number of entries the table holds (I).
	Capacity int

	// HistoryLength is the number of bits of history kept per entry (L).
	HistoryLength int

	// ConsiderationDepth is the number of most-recent bits the weight
	// function looks at (N). Zero defaults to HistoryLength.
	ConsiderationDepth int

	// MWSP is the Minimal Weight State Position. -1 disables it. Only
	// honored when MWSPSet is true; otherwise normalized() applies the
	// documented default of -1. This mirrors Seed/SeedSet below: 0 is a
	// legal, meaningful MWSP (it forces position 0 to 1), so it cannot
	// double as its own "caller left this unset" sentinel.
	MWSP    int
	MWSPSet bool

	// Defer selects deferred (batched) weight recomputation when true,
	// eager (per-push) recomputation when false.
	Defer bool

	// AutoRemove, when true, makes Insert evict the lowest-weight entry
	// instead of failing when the table is full. Immutable after New.
	AutoRemove bool

	// Seed seeds the table's owned PRNG. Only honored when SeedSet is true.
	Seed    int64
	SeedSet bool

	// Logger receives the table's diagnostic warnings. A nil Logger
	// disables logging (New installs zerolog.Nop()).
	Logger *zerolog.Logger
}

// normalized returns a copy of cfg with zero-value defaults applied:
// ConsiderationDepth -> HistoryLength when left at 0, and MWSP -> -1 when
// MWSPSet is false. Without the MWSPSet guard, a Config built by the common
// "just set Capacity/HistoryLength" caller would silently carry MWSP == 0
// (Go's zero value), which per §4.3 forces position 0 to 1 rather than
// disabling MWSP as documented.
func (cfg Config) normalized() Config {
	if cfg.ConsiderationDepth == 0 {
		cfg.ConsiderationDepth = cfg.HistoryLength
	}
	if !cfg.MWSPSet {
		cfg.MWSP = -1
	}
	return cfg
}

// Validate reports whether cfg's fields satisfy the invariants required to
// construct a Table: Capacity and HistoryLength positive, ConsiderationDepth
// in [1, HistoryLength], MWSP in [-1, ConsiderationDepth).
func (cfg Config) Validate() error {
	cfg = cfg.normalized()
	if cfg.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be >= 1, got %d", ErrInvalidArgument, cfg.Capacity)
	}
	if cfg.HistoryLength < 1 {
		return fmt.Errorf("%w: history length must be >= 1, got %d", ErrInvalidArgument, cfg.HistoryLength)
	}
	if cfg.ConsiderationDepth < 1 || cfg.ConsiderationDepth > cfg.HistoryLength {
		return fmt.Errorf("%w: consideration depth must be in [1, %d], got %d", ErrInvalidArgument, cfg.HistoryLength, cfg.ConsiderationDepth)
	}
	if cfg.MWSP < -1 || cfg.MWSP >= cfg.ConsiderationDepth {
		return fmt.Errorf("%w: mwsp must be in [-1, %d), got %d", ErrInvalidArgument, cfg.ConsiderationDepth, cfg.MWSP)
	}
	return nil
}
