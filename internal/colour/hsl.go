package colour

import (
	"fmt"
	"math"
)

// HSL is a colour in hue/saturation/lightness space, in whole units.
// H is in degrees [0,360); S and L are percentages [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the CSS hsl() form, e.g. "hsl(226, 71%, 40%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// Components returns the "h, s%, l%" form used in custom properties.
func (c HSL) Components() string {
	return fmt.Sprintf("%d, %d%%, %d%%", c.H, c.S, c.L)
}

// RGB converts back to 8-bit RGB.
func (c HSL) RGB() RGB {
	return HSLToRGB(float64(c.H), float64(c.S), float64(c.L))
}

// Hex converts back to a #rrggbb string.
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// HexToHSL parses a hex colour and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}
	return rgb.HSL(), nil
}

// HSL converts the colour to HSL, rounding each component to the nearest
// degree or percent. A hue that rounds up to 360 becomes 0.
func (rgb RGB) HSL() HSL {
	h, s, l := rgbToHSL(rgb)
	hue := int(math.Round(h * 360))
	if hue >= 360 {
		hue -= 360
	}
	return HSL{H: hue, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))}
}

// CheckHSL rejects NaN and infinite components. Finite values are always
// accepted; HSLToRGB wraps the hue and clamps the rest.
func CheckHSL(h, s, l float64) error {
	for _, c := range []struct {
		arg string
		v   float64
	}{{"h", h}, {"s", s}, {"l", l}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return &ValidationError{
				Arg:        c.arg,
				Value:      fmt.Sprint(c.v),
				Constraint: "must be a finite number",
				Err:        ErrInvalidHSL,
			}
		}
	}
	return nil
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue as a fraction of a turn [0,1), saturation and lightness in [0,1].
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}
	s = math.Min(s, 1)

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h /= 6
	return h, s, l
}

// HSLToRGB converts HSL to RGB.
// h is in degrees and is wrapped into [0,360); s and l are percentages
// and are clamped to [0,100]. Non-finite input must be rejected with
// CheckHSL first.
func HSLToRGB(h, s, l float64) RGB {
	hue := normaliseHue(h) / 360
	sat := clamp(s, 0, 100) / 100
	lig := clamp(l, 0, 100) / 100

	if sat == 0 {
		v := channel(lig)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if lig < 0.5 {
		q = lig * (1 + sat)
	} else {
		q = lig + sat - lig*sat
	}
	p := 2*lig - q

	return RGB{
		R: channel(hueToRGB(p, q, hue+1.0/3)),
		G: channel(hueToRGB(p, q, hue)),
		B: channel(hueToRGB(p, q, hue-1.0/3)),
	}
}

// HSLToHex converts HSL to a lowercase #rrggbb string.
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// hueToRGB evaluates one channel; t is a fraction of a turn.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// channel rounds a [0,1] intensity to the nearest 8-bit value.
func channel(v float64) uint8 {
	return uint8(clamp(math.Round(v*255), 0, 255))
}

// normaliseHue wraps a hue in degrees into [0,360).
func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
