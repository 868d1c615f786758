package colour

import (
	"fmt"
	"math"
	"strings"
)

// HarmonyRule names a fixed hue-rotation pattern used to derive related colours.
type HarmonyRule string

const (
	// HarmonyComplementary adds the colour opposite on the wheel.
	HarmonyComplementary HarmonyRule = "complementary"
	// HarmonyTriadic adds two colours equally spaced around the wheel.
	HarmonyTriadic HarmonyRule = "triadic"
	// HarmonyAnalogous adds the two neighbours 30 degrees either side.
	HarmonyAnalogous HarmonyRule = "analogous"
	// HarmonySplitComplementary adds the two neighbours of the complement.
	HarmonySplitComplementary HarmonyRule = "split-complementary"
)

// HarmonyInfo describes a harmony rule for listings and help output.
type HarmonyInfo struct {
	Rule        HarmonyRule `json:"rule"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Offsets     []float64   `json:"offsets"`
}

var harmonyRules = []HarmonyInfo{
	{
		Rule:        HarmonyComplementary,
		Name:        "Complementary",
		Description: "Colours opposite on the colour wheel",
		Offsets:     []float64{180},
	},
	{
		Rule:        HarmonyTriadic,
		Name:        "Triadic",
		Description: "Three colours equally spaced on the colour wheel",
		Offsets:     []float64{120, 240},
	},
	{
		Rule:        HarmonyAnalogous,
		Name:        "Analogous",
		Description: "Colours adjacent on the colour wheel",
		Offsets:     []float64{30, -30},
	},
	{
		Rule:        HarmonySplitComplementary,
		Name:        "Split Complementary",
		Description: "Base colour plus two colours adjacent to its complement",
		Offsets:     []float64{150, 210},
	},
}

// HarmonyRules returns every supported rule in a stable order.
func HarmonyRules() []HarmonyInfo {
	out := make([]HarmonyInfo, len(harmonyRules))
	copy(out, harmonyRules)
	return out
}

// ParseHarmonyRule resolves a tag, accepting "_" in place of "-" and any case.
func ParseHarmonyRule(s string) (HarmonyRule, error) {
	tag := HarmonyRule(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := tag.info(); ok {
		return tag, nil
	}
	return "", &ValidationError{
		Arg:        "harmony",
		Value:      s,
		Constraint: "must be one of complementary, triadic, analogous, split-complementary",
		Err:        ErrInvalidHarmonyRule,
	}
}

// Offsets returns the hue rotations in degrees for the rule, or nil if unknown.
func (r HarmonyRule) Offsets() []float64 {
	info, ok := r.info()
	if !ok {
		return nil
	}
	out := make([]float64, len(info.Offsets))
	copy(out, info.Offsets)
	return out
}

func (r HarmonyRule) info() (HarmonyInfo, bool) {
	for _, info := range harmonyRules {
		if info.Rule == r {
			return info, true
		}
	}
	return HarmonyInfo{}, false
}

// HarmonyOption tweaks palette generation.
type HarmonyOption func(*harmonyConfig)

type harmonyConfig struct {
	lightnessOffset float64
}

// WithLightnessOffset shifts the lightness of generated members (never the base)
// by delta percentage points. delta must lie in [-100,100]; the shifted
// lightness is clamped to [0,100].
func WithLightnessOffset(delta float64) HarmonyOption {
	return func(c *harmonyConfig) {
		c.lightnessOffset = delta
	}
}

// GeneratePalette derives related colours from base using rule.
// The first element is always base; the rest follow the rule's offsets
// with saturation and lightness taken from base.
func GeneratePalette(base RGB, rule HarmonyRule, opts ...HarmonyOption) ([]RGB, error) {
	info, ok := rule.info()
	if !ok {
		return nil, &ValidationError{
			Arg:        "harmony",
			Value:      string(rule),
			Constraint: "unknown harmony rule",
			Err:        ErrInvalidHarmonyRule,
		}
	}

	var cfg harmonyConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if off := cfg.lightnessOffset; math.IsNaN(off) || off < -100 || off > 100 {
		return nil, &ValidationError{
			Arg:        "offset",
			Value:      fmt.Sprint(off),
			Constraint: "must be a number between -100 and 100",
			Err:        ErrInvalidLightnessOffset,
		}
	}

	// Members are rotated from the whole-unit HSL of base.
	hsl := base.HSL()
	lightness := clamp(float64(hsl.L)+cfg.lightnessOffset, 0, 100)

	palette := make([]RGB, 0, len(info.Offsets)+1)
	palette = append(palette, base)
	for _, offset := range info.Offsets {
		palette = append(palette, HSLToRGB(normaliseHue(float64(hsl.H)+offset), float64(hsl.S), lightness))
	}

	return palette, nil
}

// GeneratePaletteHex is GeneratePalette over hex strings.
func GeneratePaletteHex(base string, rule string, opts ...HarmonyOption) ([]string, error) {
	rgb, err := ParseHex(base)
	if err != nil {
		return nil, err
	}
	r, err := ParseHarmonyRule(rule)
	if err != nil {
		return nil, err
	}

	palette, err := GeneratePalette(rgb, r, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = c.Hex()
	}
	return out, nil
}
