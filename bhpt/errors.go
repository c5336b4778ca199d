package bhpt

import "errors"

// Sentinel errors returned by Table operations. Callers should compare with
// errors.Is rather than equality, since operations wrap these with context.
var (
	// ErrNoCapacity is returned by Insert when the table is full and
	// AutoRemove is disabled.
	ErrNoCapacity = errors.New("bhpt: no capacity")

	// ErrInvalidIndex is returned when an index is outside [0, Capacity).
	ErrInvalidIndex = errors.New("bhpt: invalid index")

	// ErrInvalidArgument is returned for out-of-range construction or
	// reconfiguration parameters (ConsiderationDepth, MWSP).
	ErrInvalidArgument = errors.New("bhpt: invalid argument")

	// ErrNoSelectableEntry is returned by Select when total weight is zero:
	// either there are no valid entries, or every valid entry has zero
	// weight and MWSP is disabled.
	ErrNoSelectableEntry = errors.New("bhpt: no selectable entry")
)
