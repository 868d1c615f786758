package colour

import (
	"math"
)

// WCAG 2.x contrast thresholds.
const (
	// ContrastAA is the minimum ratio for normal text at level AA.
	ContrastAA = 4.5
	// ContrastAAA is the minimum ratio for normal text at level AAA.
	ContrastAAA = 7.0
	// ContrastAALarge is the minimum ratio for large text at level AA.
	ContrastAALarge = 3.0
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	r := gammaCorrect(float64(c.R) / 255.0)
	g := gammaCorrect(float64(c.G) / 255.0)
	b := gammaCorrect(float64(c.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21. The result does not depend on argument order.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	lighter := Luminance(c1)
	darker := Luminance(c2)

	if lighter < darker {
		lighter, darker = darker, lighter
	}

	return (lighter + 0.05) / (darker + 0.05)
}

// MeetsAA reports whether ratio is sufficient for normal text at level AA.
func MeetsAA(ratio float64) bool {
	return ratio >= ContrastAA
}

// MeetsAAA reports whether ratio is sufficient for normal text at level AAA.
func MeetsAAA(ratio float64) bool {
	return ratio >= ContrastAAA
}

// MeetsAALarge reports whether ratio is sufficient for large text at level AA.
func MeetsAALarge(ratio float64) bool {
	return ratio >= ContrastAALarge
}

// ContrastReport summarises how a colour pair scores against WCAG.
type ContrastReport struct {
	Ratio   float64 `json:"ratio"`
	AA      bool    `json:"wcag_aa"`
	AAA     bool    `json:"wcag_aaa"`
	AALarge bool    `json:"wcag_aa_large"`
}

// CheckContrast computes the contrast ratio of a pair and grades it.
// Ratio is rounded to two decimal places; grades use the unrounded value.
func CheckContrast(c1, c2 RGB) ContrastReport {
	ratio := ContrastRatio(c1, c2)
	return ContrastReport{
		Ratio:   math.Round(ratio*100) / 100,
		AA:      MeetsAA(ratio),
		AAA:     MeetsAAA(ratio),
		AALarge: MeetsAALarge(ratio),
	}
}

// Grade returns the highest level met: "AAA", "AA", "AA Large" or "fail".
func (r ContrastReport) Grade() string {
	switch {
	case r.AAA:
		return "AAA"
	case r.AA:
		return "AA"
	case r.AALarge:
		return "AA Large"
	default:
		return "fail"
	}
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(normaliseHue(h1) - normaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}
