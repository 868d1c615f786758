package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/logging"
	"github.com/jmylchreest/oltre/internal/typography"
	"github.com/jmylchreest/oltre/internal/webfonts"
)

func newScaleCmd(a *app) *cobra.Command {
	var (
		ratio string
		base  float64
	)

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Print a fluid type scale",
		Long: `Print the eight steps of a modular type scale with their clamp() values.

The ratio and base size default to the configured typography preset.`,
		Example: `  oltre scale
  oltre scale --ratio perfect-fourth --base 1.125`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			preset, err := typography.GetPreset(cfg.Typography)
			if err != nil {
				return err
			}

			r, err := cfg.ScaleRatio(preset)
			if err != nil {
				return err
			}
			if ratio != "" {
				if r, err = typography.ParseRatio(ratio); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("base") {
				base = cfg.BaseSize
			}

			scale, err := typography.BuildScale(base, r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				type step struct {
					typography.FluidSize
					CSS string `json:"css"`
				}
				steps := make([]step, 0, len(scale.Sizes()))
				for _, s := range scale.Sizes() {
					steps = append(steps, step{FluidSize: s, CSS: s.CSS()})
				}
				return printJSON(out, map[string]any{"base": scale.Base, "ratio": scale.Ratio, "steps": steps})
			}

			fmt.Fprintf(out, "ratio %g, base %grem\n\n", scale.Ratio, scale.Base)
			t := NewTable("Step", "Value", "Min", "Preferred", "Max", "CSS")
			for _, s := range scale.Sizes() {
				t.AddRow(string(s.Step), rem(s.Value), rem(s.Min), fmt.Sprintf("%gvw", s.Preferred), rem(s.Max), s.CSS())
			}
			return t.Fprint(out)
		},
	}

	cmd.Flags().StringVar(&ratio, "ratio", "", "scale ratio, a number or a name such as major-third")
	cmd.Flags().Float64Var(&base, "base", typography.DefaultBase, "base size in rem")
	return cmd
}

func rem(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64) + "rem"
}

const (
	presetsColours    = "colours"
	presetsTypography = "typography"
	presetsHarmonies  = "harmonies"
	presetsRatios     = "ratios"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "presets [colours|typography|harmonies|ratios]",
		Short:     "List palette, typography, harmony and ratio presets",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{presetsColours, presetsTypography, presetsHarmonies, presetsRatios},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []string{presetsColours, presetsTypography, presetsHarmonies, presetsRatios}
			if len(args) == 1 {
				kinds = args
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				doc := make(map[string]any, len(kinds))
				for _, k := range kinds {
					v, err := presetsJSON(k)
					if err != nil {
						return err
					}
					doc[k] = v
				}
				return printJSON(out, doc)
			}

			sw := newSwatcher(out)
			for i, k := range kinds {
				if i > 0 {
					fmt.Fprintln(out)
				}
				if len(kinds) > 1 {
					fmt.Fprintf(out, "%s:\n", k)
				}
				if err := presetsTable(k, sw).Fprint(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func presetsJSON(kind string) (any, error) {
	switch kind {
	case presetsColours:
		var list []colour.PaletteJSON
		for _, name := range colour.PresetNames() {
			p, err := colour.Preset(name)
			if err != nil {
				return nil, err
			}
			list = append(list, p.JSON())
		}
		return list, nil
	case presetsTypography:
		var list []typography.Preset
		for _, name := range typography.PresetNames() {
			p, err := typography.GetPreset(name)
			if err != nil {
				return nil, err
			}
			list = append(list, p)
		}
		return list, nil
	case presetsHarmonies:
		return colour.HarmonyRules(), nil
	default:
		return typography.NamedRatios(), nil
	}
}

func presetsTable(kind string, sw swatcher) *Table {
	switch kind {
	case presetsColours:
		t := NewTable("Name", "Title", "Colours")
		for _, name := range colour.PresetNames() {
			title, _ := colour.PresetTitle(name)
			p, err := colour.Preset(name)
			if err != nil {
				continue
			}
			var chips []string
			for _, s := range p.Swatches() {
				if colour.IsNeutral(s.Name) {
					continue
				}
				if sw.enabled {
					chips = append(chips, sw.chip(s.Colour))
				} else {
					chips = append(chips, s.Colour.Hex())
				}
			}
			t.AddRow(name, title, strings.Join(chips, " "))
		}
		return t

	case presetsTypography:
		t := NewTable("Name", "Heading", "Body", "Ratio", "Line height")
		for _, name := range typography.PresetNames() {
			p, err := typography.GetPreset(name)
			if err != nil {
				continue
			}
			t.AddRow(name, p.Heading.Family, p.Body.Family, strconv.FormatFloat(p.Ratio, 'f', -1, 64), strconv.FormatFloat(p.LineHeight, 'f', -1, 64))
		}
		t.SetColumnMaxWidth(2, 32)
		return t

	case presetsHarmonies:
		t := NewTable("Rule", "Name", "Offsets", "Description")
		for _, h := range colour.HarmonyRules() {
			offsets := make([]string, len(h.Offsets))
			for i, o := range h.Offsets {
				offsets[i] = fmt.Sprintf("%+g°", o)
			}
			t.AddRow(string(h.Rule), h.Name, strings.Join(offsets, " "), h.Description)
		}
		t.SetColumnMaxWidth(3, 48)
		return t

	default:
		t := NewTable("Name", "Ratio")
		for _, r := range typography.NamedRatios() {
			t.AddRow(r.Name, strconv.FormatFloat(r.Ratio, 'f', -1, 64))
		}
		return t
	}
}

func newFontsCmd(a *app) *cobra.Command {
	var (
		download  string
		preset    string
		urlPrefix string
	)

	cmd := &cobra.Command{
		Use:   "fonts [family]",
		Short: "Suggest heading and body font pairings",
		Long: `Without an argument, list every known pairing. With a family name, list the
pairings that use it as heading or body font.

With --download, fetch the web fonts of a typography preset into a directory
together with a fonts.css that references the local copies.`,
		Example: `  oltre fonts
  oltre fonts Inter
  oltre fonts --download ./assets/fonts --url-prefix /assets/fonts/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if download != "" {
				if len(args) > 0 {
					return fmt.Errorf("--download does not take a family argument")
				}
				return a.downloadFonts(cmd, preset, download, urlPrefix)
			}

			combos := typography.FontCombinations()
			if len(args) == 1 {
				combos = typography.Recommendations(args[0])
				if len(combos) == 0 {
					return fmt.Errorf("no pairings known for %q", args[0])
				}
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, combos)
			}

			t := NewTable("Pairing", "Heading", "Body", "Mood")
			for _, c := range combos {
				t.AddRow(c.Name, c.Heading, c.Body, c.Mood)
			}
			return t.Fprint(out)
		},
	}

	cmd.Flags().StringVar(&download, "download", "", "Directory to download the preset's web fonts into")
	cmd.Flags().StringVarP(&preset, "typography", "t", "", "Typography preset to download (default: configured preset)")
	cmd.Flags().StringVar(&urlPrefix, "url-prefix", "", "URL prefix for font files in fonts.css (default: ./)")

	return cmd
}

func (a *app) downloadFonts(cmd *cobra.Command, preset, dir, urlPrefix string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if preset == "" {
		preset = cfg.Typography
	}
	p, err := typography.GetPreset(preset)
	if err != nil {
		return err
	}

	fontsURL := p.FontsURL()
	if fontsURL == "" {
		return fmt.Errorf("typography preset %q uses system fonts only", preset)
	}

	a.status(cmd.OutOrStdout(), "Downloading %s fonts into %s\n", preset, dir)
	res, err := webfonts.Download(cmd.Context(), fontsURL, dir, webfonts.Options{
		URLPrefix: urlPrefix,
		Logger:    logging.Component(a.logger, "webfonts"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.jsonOutput {
		return printJSON(out, res)
	}
	for _, f := range res.Fonts {
		a.status(cmd.OutOrStdout(), "  ├─ %s\n", f)
	}
	a.status(cmd.OutOrStdout(), "  └─ %s\n", res.Stylesheet)
	return nil
}
