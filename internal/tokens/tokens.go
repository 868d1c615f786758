// Package tokens assembles a palette, a type scale and a typography preset into
// the single design-token set every output plugin renders.
package tokens

import (
	"fmt"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/typography"
)

// Mode is a colour scheme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Alias maps a semantic role onto a palette colour name.
type Alias struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

var lightAliases = []Alias{
	{Name: "text", Target: "neutral-900"},
	{Name: "text-muted", Target: "neutral-600"},
	{Name: "background", Target: "neutral-50"},
	{Name: "surface", Target: "neutral-100"},
	{Name: "border", Target: "neutral-200"},
	{Name: "border-subtle", Target: "neutral-100"},
}

var darkAliases = []Alias{
	{Name: "text", Target: "neutral-100"},
	{Name: "text-muted", Target: "neutral-400"},
	{Name: "background", Target: "neutral-900"},
	{Name: "surface", Target: "neutral-800"},
	{Name: "border", Target: "neutral-700"},
	{Name: "border-subtle", Target: "neutral-800"},
}

// SemanticAliases returns the alias table for a mode.
func SemanticAliases(m Mode) []Alias {
	src := lightAliases
	if m == ModeDark {
		src = darkAliases
	}
	out := make([]Alias, len(src))
	copy(out, src)
	return out
}

// Colour is a palette entry with its derived representations.
type Colour struct {
	Name      string     `json:"name"`
	Hex       string     `json:"hex"`
	RGB       colour.RGB `json:"rgb"`
	HSL       colour.HSL `json:"hsl"`
	Luminance float64    `json:"luminance"`
}

// Set is a complete token set.
type Set struct {
	Palette    *colour.Palette
	Scale      *typography.Scale
	Typography typography.Preset
	DarkMode   bool
	Minify     bool
}

// New validates the parts and assembles a set.
func New(p *colour.Palette, preset typography.Preset, scale *typography.Scale, darkMode bool) (*Set, error) {
	if p == nil || scale == nil {
		return nil, fmt.Errorf("palette and scale are required")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	for _, a := range lightAliases {
		if _, ok := p.Get(a.Target); !ok {
			return nil, fmt.Errorf("palette %q has no %s for the %s alias", p.Name, a.Target, a.Name)
		}
	}
	return &Set{
		Palette:    p,
		Scale:      scale,
		Typography: preset,
		DarkMode:   darkMode,
	}, nil
}

// Build resolves a configuration into a token set.
func Build(cfg *config.Config) (*Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var (
		p   *colour.Palette
		err error
	)
	if cfg.BaseColour != "" {
		base, _ := colour.ParseHex(cfg.BaseColour)
		rule, _ := colour.ParseHarmonyRule(cfg.Harmony)
		p, err = colour.FromHarmony("custom", base, rule, colour.WithLightnessOffset(cfg.LightnessOffset))
	} else {
		p, err = colour.Preset(cfg.Palette)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	if err := p.Merge(cfg.CustomColours); err != nil {
		return nil, fmt.Errorf("failed to apply custom colours: %w", err)
	}

	preset, err := typography.GetPreset(cfg.Typography)
	if err != nil {
		return nil, err
	}
	ratio, err := cfg.ScaleRatio(preset)
	if err != nil {
		return nil, err
	}
	scale, err := typography.BuildScale(cfg.BaseSize, ratio)
	if err != nil {
		return nil, fmt.Errorf("failed to build type scale: %w", err)
	}

	set, err := New(p, preset, scale, cfg.DarkMode)
	if err != nil {
		return nil, err
	}
	set.Minify = cfg.Minify
	return set, nil
}

// Name returns the palette name.
func (s *Set) Name() string {
	return s.Palette.Name
}

// Colours returns every palette colour in role order.
func (s *Set) Colours() []Colour {
	out := make([]Colour, 0, s.Palette.Len())
	for name, c := range s.Palette.All() {
		out = append(out, newColour(name, c))
	}
	return out
}

// Colour looks up a palette colour by name.
func (s *Set) Colour(name string) (Colour, bool) {
	c, ok := s.Palette.Get(name)
	if !ok {
		return Colour{}, false
	}
	return newColour(name, c), true
}

// Semantic returns the aliases for a mode.
func (s *Set) Semantic(m Mode) []Alias {
	return SemanticAliases(m)
}

// Resolve returns the colour an alias points at in a mode. Plain palette
// names resolve to themselves.
func (s *Set) Resolve(name string, m Mode) (colour.RGB, bool) {
	for _, a := range SemanticAliases(m) {
		if a.Name == name {
			return s.Palette.Get(a.Target)
		}
	}
	return s.Palette.Get(name)
}

// Sizes returns the fluid type scale, smallest first.
func (s *Set) Sizes() []typography.FluidSize {
	return s.Scale.Sizes()
}

// FontsURL returns the stylesheet URL for the preset's web fonts.
func (s *Set) FontsURL() string {
	return s.Typography.FontsURL()
}

func newColour(name string, c colour.RGB) Colour {
	return Colour{
		Name:      name,
		Hex:       c.Hex(),
		RGB:       c,
		HSL:       c.HSL(),
		Luminance: colour.Luminance(c),
	}
}
