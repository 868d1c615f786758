// Package swatch provides an output plugin that renders the palette as a PNG
// contact sheet.
package swatch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/oltre/internal/plugin/output/common"
	"github.com/jmylchreest/oltre/internal/tokens"
)

// FileName is the image written by the plugin.
const FileName = "palette.png"

// Tile geometry in pixels.
const (
	TileWidth  = 168
	TileHeight = 84
	Gap        = 8
	lineHeight = 16
)

// DefaultColumns is the number of tiles per row.
const DefaultColumns = 4

// Plugin implements the output.Plugin interface for palette swatch sheets.
type Plugin struct {
	outputDir string
	columns   int
}

// New creates a new swatch output plugin.
func New() *Plugin {
	return &Plugin{columns: DefaultColumns}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "swatch"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render the palette as a PNG swatch sheet with contrast grades"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "swatch.output-dir", "", "Output directory (default: configured output_dir)")
	cmd.Flags().IntVar(&p.columns, "swatch.columns", DefaultColumns, "Tiles per row")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.columns < 1 || p.columns > 16 {
		return fmt.Errorf("invalid columns: %d (must be between 1 and 16)", p.columns)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Generate renders the swatch sheet.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("token set cannot be nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	img := Render(set.Colours(), p.columns)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", FileName, err)
	}
	return map[string][]byte{FileName: buf.Bytes()}, nil
}

// Bounds returns the sheet size for n colours laid out in columns.
func Bounds(n, columns int) image.Rectangle {
	if n == 0 {
		return image.Rect(0, 0, Gap, Gap)
	}
	cols := min(n, columns)
	rows := (n + columns - 1) / columns
	return image.Rect(0, 0,
		Gap+cols*(TileWidth+Gap),
		Gap+rows*(TileHeight+Gap))
}

// TileOrigin returns the top-left corner of tile i.
func TileOrigin(i, columns int) image.Point {
	return image.Pt(
		Gap+(i%columns)*(TileWidth+Gap),
		Gap+(i/columns)*(TileHeight+Gap))
}

// Render draws one labelled tile per colour on a white background.
func Render(colours []tokens.Colour, columns int) *image.RGBA {
	img := image.NewRGBA(Bounds(len(colours), columns))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, c := range colours {
		at := TileOrigin(i, columns)
		tile := image.Rectangle{Min: at, Max: at.Add(image.Pt(TileWidth, TileHeight))}
		draw.Draw(img, tile, image.NewUniform(c.RGB.Colour()), image.Point{}, draw.Src)

		fg, grade := common.ContrastLabel(c.RGB)
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(fg.Colour()),
			Face: basicfont.Face7x13,
		}
		for line, text := range []string{c.Name, c.Hex, grade} {
			d.Dot = fixed.P(at.X+8, at.Y+lineHeight*(line+1)+4)
			d.DrawString(text)
		}
	}
	return img
}
