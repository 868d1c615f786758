// Package typography builds modular type scales with fluid, viewport-clamped
// sizes and holds the font presets they are paired with.
package typography

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidRatio is returned when a scale ratio or base size is out of range.
var ErrInvalidRatio = errors.New("invalid ratio")

// ValidationError reports which argument was rejected and the constraint it broke.
type ValidationError struct {
	Arg        string
	Value      string
	Constraint string
	Err        error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s: %s", e.Err, e.Arg, e.Value, e.Constraint)
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Ratio bounds: a scale must grow, and by no more than doubling per step.
const (
	MinRatio = 1.0 // exclusive
	MaxRatio = 2.0 // inclusive
)

// Clamp factors applied to each step value.
const (
	MinFactor       = 0.875
	PreferredFactor = 1.25
	MaxFactor       = 1.125
)

// DefaultBase is the base size in rem.
const DefaultBase = 1.0

// Step names a position in the scale.
type Step string

const (
	StepXS   Step = "xs"
	StepSM   Step = "sm"
	StepBase Step = "base"
	StepLG   Step = "lg"
	StepXL   Step = "xl"
	Step2XL  Step = "2xl"
	Step3XL  Step = "3xl"
	Step4XL  Step = "4xl"
)

var steps = []struct {
	step     Step
	exponent int
}{
	{StepXS, -2},
	{StepSM, -1},
	{StepBase, 0},
	{StepLG, 1},
	{StepXL, 2},
	{Step2XL, 3},
	{Step3XL, 4},
	{Step4XL, 5},
}

// Steps returns every step name from smallest to largest.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s.step
	}
	return out
}

// Exponent returns the power of the ratio applied to a step.
func (s Step) Exponent() (int, bool) {
	for _, def := range steps {
		if def.step == s {
			return def.exponent, true
		}
	}
	return 0, false
}

// FluidSize is a single step expressed as a three-point clamp.
// Min and Max are in rem; Preferred is the viewport-relative component in vw.
type FluidSize struct {
	Step      Step    `json:"step"`
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Preferred float64 `json:"preferred"`
	Max       float64 `json:"max"`
}

// NewFluidSize derives the clamp points for a step value.
func NewFluidSize(step Step, value float64) FluidSize {
	return FluidSize{
		Step:      step,
		Value:     value,
		Min:       value * MinFactor,
		Preferred: value * PreferredFactor,
		Max:       value * MaxFactor,
	}
}

// CSS renders the size as clamp(<min>rem, <preferred>vw, <max>rem).
func (f FluidSize) CSS() string {
	return fmt.Sprintf("clamp(%srem, %svw, %srem)", formatNumber(f.Min), formatNumber(f.Preferred), formatNumber(f.Max))
}

// Scale is a modular type scale.
type Scale struct {
	Base  float64     `json:"base"`
	Ratio float64     `json:"ratio"`
	sizes []FluidSize // in step order
}

// BuildScale generates every step as base * ratio^exponent.
// ratio must lie in (1.0, 2.0] and base must be positive; anything else is
// rejected rather than clamped.
func BuildScale(base, ratio float64) (*Scale, error) {
	if math.IsNaN(ratio) || ratio <= MinRatio || ratio > MaxRatio {
		return nil, &ValidationError{
			Arg:        "ratio",
			Value:      formatNumber(ratio),
			Constraint: "must be greater than 1.0 and at most 2.0",
			Err:        ErrInvalidRatio,
		}
	}
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		return nil, &ValidationError{
			Arg:        "base",
			Value:      formatNumber(base),
			Constraint: "must be a positive size",
			Err:        ErrInvalidRatio,
		}
	}

	s := &Scale{Base: base, Ratio: ratio, sizes: make([]FluidSize, len(steps))}
	for i, def := range steps {
		s.sizes[i] = NewFluidSize(def.step, base*math.Pow(ratio, float64(def.exponent)))
	}
	return s, nil
}

// Get returns the size for a step.
func (s *Scale) Get(step Step) (FluidSize, bool) {
	for _, size := range s.sizes {
		if size.Step == step {
			return size, true
		}
	}
	return FluidSize{}, false
}

// Sizes returns every size from smallest to largest.
func (s *Scale) Sizes() []FluidSize {
	out := make([]FluidSize, len(s.sizes))
	copy(out, s.sizes)
	return out
}

// Map returns the scale keyed by step name.
func (s *Scale) Map() map[Step]FluidSize {
	out := make(map[Step]FluidSize, len(s.sizes))
	for _, size := range s.sizes {
		out[size.Step] = size
	}
	return out
}

// NamedRatio is a conventional musical interval used as a scale ratio.
type NamedRatio struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
}

var namedRatios = []NamedRatio{
	{"minor-second", 1.067},
	{"major-second", 1.125},
	{"minor-third", 1.2},
	{"major-third", 1.25},
	{"perfect-fourth", 1.333},
	{"augmented-fourth", 1.414},
	{"perfect-fifth", 1.5},
	{"golden-ratio", 1.618},
}

// NamedRatios returns the conventional ratios, smallest first.
func NamedRatios() []NamedRatio {
	out := make([]NamedRatio, len(namedRatios))
	copy(out, namedRatios)
	return out
}

// ParseRatio accepts a ratio name ("major-third") or a number ("1.25").
// The result is range checked.
func ParseRatio(s string) (float64, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, nr := range namedRatios {
		if nr.Name == key {
			return nr.Ratio, nil
		}
	}

	v, err := strconv.ParseFloat(key, 64)
	if err != nil || math.IsNaN(v) || v <= MinRatio || v > MaxRatio {
		return 0, &ValidationError{
			Arg:        "ratio",
			Value:      s,
			Constraint: "must be a ratio name or a number greater than 1.0 and at most 2.0",
			Err:        ErrInvalidRatio,
		}
	}
	return v, nil
}

// formatNumber prints up to four decimals without trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
