// Package themejson provides a WordPress theme.json output plugin.
package themejson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/plugin/output/common"
	"github.com/jmylchreest/oltre/internal/tokens"
	"github.com/jmylchreest/oltre/internal/typography"
)

// FileName is the document written by the plugin.
const FileName = "theme.json"

const schemaURL = "https://schemas.wp.org/trunk/theme.json"

// Plugin implements the output.Plugin interface for WordPress block themes.
type Plugin struct {
	outputDir string
	neutrals  bool
}

// New creates a new theme.json output plugin.
func New() *Plugin {
	return &Plugin{neutrals: true}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "themejson"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a WordPress theme.json (version 2) with palette, font families and fluid font sizes"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "themejson.output-dir", "", "Output directory (default: configured output_dir)")
	cmd.Flags().BoolVar(&p.neutrals, "themejson.neutrals", true, "Include the neutral ramp in the editor palette")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Document is the subset of theme.json the plugin writes.
type Document struct {
	Schema   string   `json:"$schema"`
	Version  int      `json:"version"`
	Settings Settings `json:"settings"`
	Styles   Styles   `json:"styles"`
}

// Settings is theme.json "settings".
type Settings struct {
	Color      ColorSettings      `json:"color"`
	Typography TypographySettings `json:"typography"`
}

// ColorSettings is theme.json "settings.color".
type ColorSettings struct {
	Palette []PaletteEntry `json:"palette"`
}

// PaletteEntry is one editor colour.
type PaletteEntry struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// TypographySettings is theme.json "settings.typography".
type TypographySettings struct {
	Fluid        bool         `json:"fluid"`
	FontFamilies []FontFamily `json:"fontFamilies"`
	FontSizes    []FontSize   `json:"fontSizes"`
}

// FontFamily is one entry of "fontFamilies".
type FontFamily struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	FontFamily string `json:"fontFamily"`
}

// FontSize is one entry of "fontSizes". Size already holds the clamp()
// expression, so WordPress must not compute its own fluid value.
type FontSize struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Size  string `json:"size"`
	Fluid bool   `json:"fluid"`
}

// Styles is theme.json "styles".
type Styles struct {
	Color      StyleColor             `json:"color"`
	Typography StyleTypography        `json:"typography"`
	Elements   map[string]StyleBlocks `json:"elements"`
}

// StyleColor sets text and background colours.
type StyleColor struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

// StyleTypography sets font properties.
type StyleTypography struct {
	FontFamily    string `json:"fontFamily,omitempty"`
	FontSize      string `json:"fontSize,omitempty"`
	LineHeight    string `json:"lineHeight,omitempty"`
	LetterSpacing string `json:"letterSpacing,omitempty"`
	FontWeight    string `json:"fontWeight,omitempty"`
}

// StyleBlocks wraps the typography of an element.
type StyleBlocks struct {
	Typography StyleTypography `json:"typography"`
}

// Generate renders theme.json from the token set.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("token set cannot be nil")
	}

	doc := Build(set, p.neutrals)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode theme.json: %w", err)
	}

	return map[string][]byte{FileName: buf.Bytes()}, nil
}

// Build converts a token set into a theme.json document.
func Build(set *tokens.Set, includeNeutrals bool) Document {
	palette := make([]PaletteEntry, 0, set.Palette.Len())
	for _, c := range set.Colours() {
		if !includeNeutrals && colour.IsNeutral(c.Name) {
			continue
		}
		palette = append(palette, PaletteEntry{
			Name:  common.TitleCase(c.Name),
			Slug:  c.Name,
			Color: c.Hex,
		})
	}

	sizes := make([]FontSize, 0, len(set.Sizes()))
	for _, s := range set.Sizes() {
		sizes = append(sizes, FontSize{
			Name:  sizeName(s.Step),
			Slug:  string(s.Step),
			Size:  s.CSS(),
			Fluid: false,
		})
	}

	preset := set.Typography
	return Document{
		Schema:  schemaURL,
		Version: 2,
		Settings: Settings{
			Color: ColorSettings{Palette: palette},
			Typography: TypographySettings{
				Fluid: true,
				FontFamilies: []FontFamily{
					{Name: "Heading Font", Slug: "heading", FontFamily: preset.Heading.Stack()},
					{Name: "Body Font", Slug: "body", FontFamily: preset.Body.Stack()},
				},
				FontSizes: sizes,
			},
		},
		Styles: Styles{
			Color: StyleColor{
				Background: presetColour("background", set),
				Text:       presetColour("text", set),
			},
			Typography: StyleTypography{
				FontFamily:    "var(--wp--preset--font-family--body)",
				FontSize:      "var(--wp--preset--font-size--base)",
				LineHeight:    fmt.Sprintf("%g", preset.LineHeight),
				LetterSpacing: preset.BodyLetterSpacing,
			},
			Elements: map[string]StyleBlocks{
				"heading": {Typography: StyleTypography{
					FontFamily:    "var(--wp--preset--font-family--heading)",
					LineHeight:    fmt.Sprintf("%g", typography.HeadingLineHeight),
					LetterSpacing: preset.HeadingLetterSpacing,
					FontWeight:    "700",
				}},
			},
		},
	}
}

// presetColour references the palette entry an alias resolves to in light mode.
func presetColour(alias string, set *tokens.Set) string {
	for _, a := range set.Semantic(tokens.ModeLight) {
		if a.Name == alias {
			return "var(--wp--preset--color--" + a.Target + ")"
		}
	}
	return ""
}

func sizeName(step typography.Step) string {
	switch step {
	case typography.StepXS:
		return "Extra Small"
	case typography.StepSM:
		return "Small"
	case typography.StepBase:
		return "Medium"
	case typography.StepLG:
		return "Large"
	case typography.StepXL:
		return "Extra Large"
	default:
		return string(step)[:1] + "X Large"
	}
}
