package plugin

import (
	"context"
)

// OutputPlugin is the interface that output plugins must implement for go-plugin RPC.
type OutputPlugin interface {
	// Generate creates output file(s) from the given tokens.
	Generate(ctx context.Context, tokens TokenData) (map[string][]byte, error)

	// PostExecute runs after successful Generate() and file writing.
	PostExecute(ctx context.Context, writtenFiles []string) error

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// GetFlagHelp returns help information for plugin flags.
	GetFlagHelp() []FlagHelp
}

// TokenData is the design token payload sent to output plugins.
type TokenData struct {
	Palette    string            `json:"palette"`
	Colours    []TokenColour     `json:"colours"`
	Light      map[string]string `json:"light"`
	Dark       map[string]string `json:"dark,omitempty"`
	Typography TypographyData    `json:"typography"`
	PluginArgs map[string]any    `json:"plugin_args,omitempty"`
	DryRun     bool              `json:"dry_run"`
}

// TokenColour is one palette entry.
type TokenColour struct {
	Name      string    `json:"name"`
	Hex       string    `json:"hex"`
	RGB       RGBColour `json:"rgb"`
	HSL       HSLColour `json:"hsl"`
	Luminance float64   `json:"luminance"`
}

// RGBColour represents an RGB color.
type RGBColour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColour holds rounded hue (degrees), saturation and lightness (percent).
type HSLColour struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// TypographyData describes the font preset and fluid type scale.
type TypographyData struct {
	Preset               string      `json:"preset"`
	Heading              FontData    `json:"heading"`
	Body                 FontData    `json:"body"`
	Ratio                float64     `json:"ratio"`
	Base                 float64     `json:"base"`
	LineHeight           float64     `json:"line_height"`
	HeadingLetterSpacing string      `json:"heading_letter_spacing"`
	BodyLetterSpacing    string      `json:"body_letter_spacing"`
	FontsURL             string      `json:"fonts_url,omitempty"`
	Steps                []ScaleStep `json:"steps"`
}

// FontData is one font family.
type FontData struct {
	Family   string `json:"family"`
	Category string `json:"category"`
	Stack    string `json:"stack"`
	Weights  []int  `json:"weights"`
}

// ScaleStep is one fluid type size in rem (preferred in vw).
type ScaleStep struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Preferred float64 `json:"preferred"`
	Max       float64 `json:"max"`
	Clamp     string  `json:"clamp"`
}

// Colour returns the palette entry with the given name.
func (d TokenData) Colour(name string) (TokenColour, bool) {
	for _, c := range d.Colours {
		if c.Name == name {
			return c, true
		}
	}
	return TokenColour{}, false
}
