// Package colour provides colour-space conversion, WCAG contrast checks,
// harmony-based palette generation and named design-token palettes.
package colour

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/oltre/internal/security"
)

var hexPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as a lowercase six digit hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Colour converts to an opaque color.RGBA for use with the image packages.
func (rgb RGB) Colour() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ParseHex parses a #rgb or #rrggbb string.
// Shorthand input is expanded by digit duplication before decoding.
func ParseHex(s string) (RGB, error) {
	if !hexPattern.MatchString(s) {
		return RGB{}, &ValidationError{
			Arg:        "hex",
			Value:      s,
			Constraint: "must match #rgb or #rrggbb",
			Err:        ErrInvalidColourFormat,
		}
	}

	digits := s[1:]
	if len(digits) == 3 {
		var b strings.Builder
		for _, d := range digits {
			b.WriteRune(d)
			b.WriteRune(d)
		}
		digits = b.String()
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		// Unreachable once the pattern matched.
		return RGB{}, fmt.Errorf("failed to decode %q: %w", s, err)
	}

	return RGB{
		R: security.SafeUint8FromUint64(v >> 16 & 0xff),
		G: security.SafeUint8FromUint64(v >> 8 & 0xff),
		B: security.SafeUint8FromUint64(v & 0xff),
	}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level tables of known-good colours.
func MustParseHex(s string) RGB {
	rgb, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return rgb
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}
