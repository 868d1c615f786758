package colour

import (
	"fmt"
	"slices"
)

// DefaultPreset is the palette used when none is configured.
const DefaultPreset = "professional"

type presetDef struct {
	title   string
	colours [][2]string
}

// Order matters: it is the role order of the resulting palette.
var presets = map[string]presetDef{
	"professional": {
		title: "Professional",
		colours: [][2]string{
			{NamePrimary, "#1e40af"},
			{NameSecondary, "#64748b"},
			{NameAccent, "#f59e0b"},
			{NameSuccess, "#10b981"},
			{NameWarning, "#f59e0b"},
			{NameError, "#ef4444"},
			{"neutral-50", "#f8fafc"},
			{"neutral-100", "#f1f5f9"},
			{"neutral-200", "#e2e8f0"},
			{"neutral-300", "#cbd5e1"},
			{"neutral-400", "#94a3b8"},
			{"neutral-500", "#64748b"},
			{"neutral-600", "#475569"},
			{"neutral-700", "#334155"},
			{"neutral-800", "#1e293b"},
			{"neutral-900", "#0f172a"},
		},
	},
	"creative": {
		title: "Creative",
		colours: [][2]string{
			{NamePrimary, "#8b5cf6"},
			{NameSecondary, "#06b6d4"},
			{NameAccent, "#f59e0b"},
			{NameSuccess, "#10b981"},
			{NameWarning, "#f59e0b"},
			{NameError, "#ef4444"},
			{"neutral-50", "#faf5ff"},
			{"neutral-100", "#f3e8ff"},
			{"neutral-200", "#e9d5ff"},
			{"neutral-300", "#d8b4fe"},
			{"neutral-400", "#c084fc"},
			{"neutral-500", "#a855f7"},
			{"neutral-600", "#9333ea"},
			{"neutral-700", "#7c3aed"},
			{"neutral-800", "#6b21a8"},
			{"neutral-900", "#581c87"},
		},
	},
	"minimalist": {
		title: "Minimalist",
		colours: [][2]string{
			{NamePrimary, "#000000"},
			{NameSecondary, "#6b7280"},
			{NameAccent, "#dc2626"},
			{NameSuccess, "#059669"},
			{NameWarning, "#d97706"},
			{NameError, "#dc2626"},
			{"neutral-50", "#ffffff"},
			{"neutral-100", "#f9fafb"},
			{"neutral-200", "#f3f4f6"},
			{"neutral-300", "#e5e7eb"},
			{"neutral-400", "#d1d5db"},
			{"neutral-500", "#9ca3af"},
			{"neutral-600", "#6b7280"},
			{"neutral-700", "#4b5563"},
			{"neutral-800", "#374151"},
			{"neutral-900", "#111827"},
		},
	},
	"nature": {
		title: "Nature",
		colours: [][2]string{
			{NamePrimary, "#059669"},
			{NameSecondary, "#0d9488"},
			{NameAccent, "#ea580c"},
			{NameSuccess, "#059669"},
			{NameWarning, "#d97706"},
			{NameError, "#dc2626"},
			{"neutral-50", "#f0fdf4"},
			{"neutral-100", "#dcfce7"},
			{"neutral-200", "#bbf7d0"},
			{"neutral-300", "#86efac"},
			{"neutral-400", "#4ade80"},
			{"neutral-500", "#22c55e"},
			{"neutral-600", "#16a34a"},
			{"neutral-700", "#15803d"},
			{"neutral-800", "#166534"},
			{"neutral-900", "#14532d"},
		},
	},
}

// PresetNames returns the available palette presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PresetTitle returns the display name of a preset.
func PresetTitle(name string) (string, bool) {
	def, ok := presets[name]
	return def.title, ok
}

// Preset returns a fresh copy of the named palette.
func Preset(name string) (*Palette, error) {
	def, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette preset: %s (available: %v)", name, PresetNames())
	}

	p := NewPalette(name)
	for _, kv := range def.colours {
		if err := p.Add(kv[0], MustParseHex(kv[1])); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Status colours used when a palette is derived from a single base colour.
var (
	defaultSuccess = MustParseHex("#10b981")
	defaultWarning = MustParseHex("#f59e0b")
	defaultError   = MustParseHex("#ef4444")
)

// complementAccentOffset darkens the accent of a complementary palette so it
// differs from the secondary colour.
const complementAccentOffset = -15

// FromHarmony builds a full palette from a base colour: primary is base,
// secondary and accent come from rule, status colours are the defaults and
// the neutrals are a ramp tinted with the base hue.
func FromHarmony(name string, base RGB, rule HarmonyRule, opts ...HarmonyOption) (*Palette, error) {
	members, err := GeneratePalette(base, rule, opts...)
	if err != nil {
		return nil, err
	}

	secondary := members[1]
	accent := secondary
	if len(members) > 2 {
		accent = members[2]
	} else {
		hsl := secondary.HSL()
		accent = HSLToRGB(float64(hsl.H), float64(hsl.S), float64(hsl.L+complementAccentOffset))
	}

	p := NewPalette(name)
	for _, s := range []Swatch{
		{Name: NamePrimary, Colour: base},
		{Name: NameSecondary, Colour: secondary},
		{Name: NameAccent, Colour: accent},
		{Name: NameSuccess, Colour: defaultSuccess},
		{Name: NameWarning, Colour: defaultWarning},
		{Name: NameError, Colour: defaultError},
	} {
		if err := p.Add(s.Name, s.Colour); err != nil {
			return nil, err
		}
	}
	for _, s := range NeutralRamp(base) {
		if err := p.Add(s.Name, s.Colour); err != nil {
			return nil, err
		}
	}

	return p, nil
}
