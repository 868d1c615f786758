package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/colour"
)

// ColourInfo is the JSON form of one converted colour.
type ColourInfo struct {
	Hex       string     `json:"hex"`
	RGB       colour.RGB `json:"rgb"`
	HSL       colour.HSL `json:"hsl"`
	Luminance float64    `json:"luminance"`
}

func colourInfo(c colour.RGB) ColourInfo {
	return ColourInfo{
		Hex:       c.Hex(),
		RGB:       c,
		HSL:       c.HSL(),
		Luminance: colour.Luminance(c),
	}
}

// parseHSL parses "h,s,l" with optional % signs.
func parseHSL(s string) (colour.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colour.RGB{}, fmt.Errorf("invalid HSL %q: want h,s,l", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(p), "%"), 64)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("invalid HSL %q: %w", s, err)
		}
		v[i] = f
	}
	if err := colour.CheckHSL(v[0], v[1], v[2]); err != nil {
		return colour.RGB{}, err
	}
	return colour.HSLToRGB(v[0], v[1], v[2]), nil
}

func newConvertCmd(a *app) *cobra.Command {
	var hsl string

	cmd := &cobra.Command{
		Use:   "convert [hex]",
		Short: "Convert a colour between hex, RGB and HSL",
		Example: `  oltre convert '#1e40af'
  oltre convert --hsl 226,71,40`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				c   colour.RGB
				err error
			)
			switch {
			case hsl != "" && len(args) > 0:
				return errors.New("pass either a hex colour or --hsl, not both")
			case hsl != "":
				c, err = parseHSL(hsl)
			case len(args) == 1:
				c, err = colour.ParseHex(args[0])
			default:
				return errors.New("a hex colour or --hsl is required")
			}
			if err != nil {
				return err
			}

			info := colourInfo(c)
			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, info)
			}

			sw := newSwatcher(out)
			t := NewTable("Format", "Value")
			t.AddRow("hex", sw.label(c, info.Hex))
			t.AddRow("rgb", c.String())
			t.AddRow("hsl", info.HSL.String())
			t.AddRow("luminance", strconv.FormatFloat(info.Luminance, 'f', 4, 64))
			return t.Fprint(out)
		},
	}

	cmd.Flags().StringVar(&hsl, "hsl", "", "convert from HSL given as h,s,l")
	return cmd
}

// ContrastResult is the JSON form of the contrast command.
type ContrastResult struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	colour.ContrastReport
	Grade string `json:"grade"`
}

func newContrastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "contrast <foreground> <background>",
		Short:   "Check the WCAG contrast ratio of two colours",
		Example: `  oltre contrast '#475569' '#f8fafc'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := colour.ParseHex(args[0])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bg, err := colour.ParseHex(args[1])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}

			report := colour.CheckContrast(fg, bg)
			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, ContrastResult{
					Foreground:     fg.Hex(),
					Background:     bg.Hex(),
					ContrastReport: report,
					Grade:          report.Grade(),
				})
			}

			sw := newSwatcher(out)
			fmt.Fprintf(out, "%s on %s  %s  ratio %.2f:1  %s\n\n",
				fg.Hex(), bg.Hex(), sw.pair(fg, bg, "Sample text"), report.Ratio, sw.grade(report.Grade()))

			t := NewTable("Level", "Minimum", "Result")
			t.AddRow("AA Large", "3.0", passFail(report.AALarge))
			t.AddRow("AA", "4.5", passFail(report.AA))
			t.AddRow("AAA", "7.0", passFail(report.AAA))
			return t.Fprint(out)
		},
	}
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func newPaletteCmd(a *app) *cobra.Command {
	var (
		harmony string
		offset  float64
	)

	cmd := &cobra.Command{
		Use:   "palette <base>",
		Short: "Generate a harmony palette from a base colour",
		Example: `  oltre palette '#1e40af'
  oltre palette '#1e40af' --harmony triadic --offset 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}
			rule, err := colour.ParseHarmonyRule(harmony)
			if err != nil {
				return err
			}
			palette, err := colour.GeneratePalette(base, rule, colour.WithLightnessOffset(offset))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				hexes := make([]string, len(palette))
				for i, c := range palette {
					hexes[i] = c.Hex()
				}
				return printJSON(out, map[string]any{
					"base":    base.Hex(),
					"harmony": rule,
					"palette": hexes,
				})
			}

			sw := newSwatcher(out)
			t := NewTable("", "Hex", "HSL", "Luminance")
			for _, c := range palette {
				t.AddRow(sw.chip(c), c.Hex(), c.HSL().String(), strconv.FormatFloat(colour.Luminance(c), 'f', 4, 64))
			}
			return t.Fprint(out)
		},
	}

	cmd.Flags().StringVar(&harmony, "harmony", string(colour.HarmonyComplementary), "harmony rule (complementary, triadic, analogous, split-complementary)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "lightness offset applied to generated colours, in percent")
	return cmd
}

func newRampCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ramp <base>",
		Short:   "Derive a ten-step neutral ramp tinted with a base colour",
		Example: `  oltre ramp '#1e40af'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}
			ramp := colour.NeutralRamp(base)

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				hexes := make(map[string]string, len(ramp))
				for _, s := range ramp {
					hexes[s.Name] = s.Colour.Hex()
				}
				return printJSON(out, hexes)
			}

			sw := newSwatcher(out)
			t := NewTable("", "Name", "Hex", "Luminance")
			for _, s := range ramp {
				t.AddRow(sw.chip(s.Colour), s.Name, s.Colour.Hex(), strconv.FormatFloat(colour.Luminance(s.Colour), 'f', 4, 64))
			}
			return t.Fprint(out)
		},
	}
}
