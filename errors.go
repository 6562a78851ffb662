package gear

import "errors"

// Errors returned by parameter derivation and train mutation. All of them
// are programmer/input errors surfaced immediately; none are transient.
var (
	// ErrInvalidParameter reports an out of domain gear dimension such as
	// a non-positive module or a tooth count under 1.
	ErrInvalidParameter = errors.New("gear: invalid parameter")
	// ErrModuleMismatch reports an attempt to mesh gears of differing
	// module. Undetected it would silently produce non-tangent gears, so
	// meshing fails fast instead.
	ErrModuleMismatch = errors.New("gear: meshing gears must share module")
	// ErrAttached reports an attempt to attach a gear that already has a
	// pinion.
	ErrAttached = errors.New("gear: gear already attached to a pinion")
	// ErrCycle reports an attachment that would make a gear its own
	// transitive pinion.
	ErrCycle = errors.New("gear: attachment would create a cycle")
	// ErrForeignGear reports use of a gear that belongs to another train.
	ErrForeignGear = errors.New("gear: gear belongs to a different train")
	// ErrDetached reports use of a gear that was removed from its train.
	ErrDetached = errors.New("gear: gear was detached from train")
)
