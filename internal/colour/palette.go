package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidPalette is returned when a palette breaks its naming or ramp invariants.
var ErrInvalidPalette = errors.New("invalid palette")

// Core role names, in the order they appear in a palette.
const (
	NamePrimary   = "primary"
	NameSecondary = "secondary"
	NameAccent    = "accent"
	NameSuccess   = "success"
	NameWarning   = "warning"
	NameError     = "error"
)

// NeutralSteps are the fixed steps of a neutral ramp, lightest first.
var NeutralSteps = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

const neutralPrefix = "neutral-"

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsValidName reports whether name can be used as a swatch name. Names end
// up verbatim in CSS custom properties and class selectors.
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}

// NeutralName returns the swatch name for a neutral step, e.g. "neutral-500".
func NeutralName(step int) string {
	return fmt.Sprintf("%s%d", neutralPrefix, step)
}

// IsNeutral reports whether name belongs to the neutral ramp.
func IsNeutral(name string) bool {
	return strings.HasPrefix(name, neutralPrefix)
}

// Swatch is a named colour within a palette.
type Swatch struct {
	Name   string `json:"name"`
	Colour RGB    `json:"rgb"`
}

// Palette is an ordered set of uniquely named colours.
// Insertion order is the semantic role order.
type Palette struct {
	Name     string
	swatches []Swatch
	index    map[string]int
}

// NewPalette creates an empty palette.
func NewPalette(name string) *Palette {
	return &Palette{
		Name:  name,
		index: make(map[string]int),
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.swatches)
}

// Add appends a new colour. Names must be unique and match [a-z0-9-]+.
func (p *Palette) Add(name string, c RGB) error {
	if !IsValidName(name) {
		return fmt.Errorf("%w: swatch name %q must match [a-z0-9-]+", ErrInvalidPalette, name)
	}
	if _, exists := p.index[name]; exists {
		return fmt.Errorf("%w: duplicate swatch name %q", ErrInvalidPalette, name)
	}
	p.index[name] = len(p.swatches)
	p.swatches = append(p.swatches, Swatch{Name: name, Colour: c})
	return nil
}

// Set replaces an existing colour in place, or appends it if the name is new.
func (p *Palette) Set(name string, c RGB) error {
	if i, ok := p.index[name]; ok {
		p.swatches[i].Colour = c
		return nil
	}
	return p.Add(name, c)
}

// Get returns the colour with the given name.
func (p *Palette) Get(name string) (RGB, bool) {
	i, ok := p.index[name]
	if !ok {
		return RGB{}, false
	}
	return p.swatches[i].Colour, true
}

// Names returns swatch names in order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.swatches))
	for i, s := range p.swatches {
		names[i] = s.Name
	}
	return names
}

// Swatches returns a copy of the swatches in order.
func (p *Palette) Swatches() []Swatch {
	return slices.Clone(p.swatches)
}

// All returns an iterator over name/colour pairs in order.
func (p *Palette) All() func(func(string, RGB) bool) {
	return func(yield func(string, RGB) bool) {
		for _, s := range p.swatches {
			if !yield(s.Name, s.Colour) {
				return
			}
		}
	}
}

// Neutrals returns the neutral ramp swatches in palette order.
func (p *Palette) Neutrals() []Swatch {
	var out []Swatch
	for _, s := range p.swatches {
		if IsNeutral(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

// Merge applies hex overrides. Existing names keep their position;
// new names are appended in sorted order so the result is deterministic.
func (p *Palette) Merge(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, name := range keys {
		rgb, err := ParseHex(overrides[name])
		if err != nil {
			return fmt.Errorf("custom colour %q: %w", name, err)
		}
		if err := p.Set(name, rgb); err != nil {
			return fmt.Errorf("custom colour: %w", err)
		}
	}
	return nil
}

// Validate checks the palette invariants: unique names and, when a neutral
// ramp is present, exactly one swatch per step whose relative luminance
// never increases from neutral-50 to neutral-900.
func (p *Palette) Validate() error {
	seen := make(map[string]struct{}, len(p.swatches))
	for _, s := range p.swatches {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: duplicate swatch name %q", ErrInvalidPalette, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	if len(p.Neutrals()) == 0 {
		return nil
	}

	prev := 2.0
	for _, step := range NeutralSteps {
		name := NeutralName(step)
		c, ok := p.Get(name)
		if !ok {
			return fmt.Errorf("%w: neutral ramp is missing %s", ErrInvalidPalette, name)
		}
		lum := Luminance(c)
		if lum > prev {
			return fmt.Errorf("%w: %s (%s) is lighter than the step before it", ErrInvalidPalette, name, c.Hex())
		}
		prev = lum
	}

	if n := len(p.Neutrals()); n != len(NeutralSteps) {
		return fmt.Errorf("%w: neutral ramp has %d steps, want %d", ErrInvalidPalette, n, len(NeutralSteps))
	}

	return nil
}

// ColourJSON represents a palette colour in JSON output format.
type ColourJSON struct {
	Name      string  `json:"name"`
	Hex       string  `json:"hex"`
	RGB       RGB     `json:"rgb"`
	HSL       HSL     `json:"hsl"`
	Luminance float64 `json:"luminance"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Name    string       `json:"name"`
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// JSON returns the palette as its JSON document type.
func (p *Palette) JSON() PaletteJSON {
	colours := make([]ColourJSON, len(p.swatches))
	for i, s := range p.swatches {
		colours[i] = ColourJSON{
			Name:      s.Name,
			Hex:       s.Colour.Hex(),
			RGB:       s.Colour,
			HSL:       s.Colour.HSL(),
			Luminance: Luminance(s.Colour),
		}
	}
	return PaletteJSON{
		Name:    p.Name,
		Count:   len(colours),
		Colours: colours,
	}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSON(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.swatches) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette %s with %d colours:\n", p.Name, len(p.swatches))
	for _, s := range p.swatches {
		fmt.Fprintf(&b, "  %-12s %s (%s)\n", s.Name, s.Colour.Hex(), s.Colour.HSL())
	}
	return b.String()
}
