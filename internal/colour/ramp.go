package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp endpoints in CIE L*, as fractions.
const (
	rampLightest = 0.98
	rampDarkest  = 0.13
	// Neutrals keep only a hint of the base hue.
	rampChromaFactor = 0.15
	rampMaxChroma    = 0.035
)

// NeutralRamp derives a neutral ramp tinted with the hue of base.
// Steps are evenly spaced in CIE L*, so lightness falls monotonically
// from neutral-50 to neutral-900.
func NeutralRamp(base RGB) []Swatch {
	c := colorful.Color{
		R: float64(base.R) / 255,
		G: float64(base.G) / 255,
		B: float64(base.B) / 255,
	}
	hue, chroma, _ := c.Hcl()
	tint := math.Min(chroma*rampChromaFactor, rampMaxChroma)

	ramp := make([]Swatch, len(NeutralSteps))
	last := float64(len(NeutralSteps) - 1)
	for i, step := range NeutralSteps {
		l := rampLightest - (rampLightest-rampDarkest)*float64(i)/last
		r, g, b := colorful.Hcl(hue, tint, l).Clamped().RGB255()
		ramp[i] = Swatch{
			Name:   NeutralName(step),
			Colour: RGB{R: r, G: g, B: b},
		}
	}
	return ramp
}
