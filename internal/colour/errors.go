package colour

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColourFormat is returned when a hex string is not #rgb or #rrggbb.
	ErrInvalidColourFormat = errors.New("invalid colour format")

	// ErrInvalidHarmonyRule is returned for an unrecognised harmony tag.
	ErrInvalidHarmonyRule = errors.New("invalid harmony rule")

	// ErrInvalidHSL is returned for a NaN or infinite HSL component.
	ErrInvalidHSL = errors.New("invalid HSL value")

	// ErrInvalidLightnessOffset is returned for an offset that is not a
	// finite number in [-100,100].
	ErrInvalidLightnessOffset = errors.New("invalid lightness offset")
)

// ValidationError reports which argument was rejected and the constraint it broke.
type ValidationError struct {
	Arg        string
	Value      string
	Constraint string
	Err        error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %q: %s", e.Err, e.Arg, e.Value, e.Constraint)
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
