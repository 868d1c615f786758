package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/config"
)

// overrides are token settings given on the command line. They take
// precedence over the config file and the environment.
type overrides struct {
	cmd *cobra.Command

	palette    string
	baseColour string
	harmony    string
	offset     float64
	typography string
	ratio      string
	baseSize   float64
	darkMode   bool
	minify     bool
	outputDir  string
}

func bindOverrides(cmd *cobra.Command) *overrides {
	o := &overrides{cmd: cmd}
	f := cmd.Flags()
	f.StringVarP(&o.palette, "palette", "p", "", "palette preset (professional, creative, minimalist, nature)")
	f.StringVarP(&o.baseColour, "base-colour", "b", "", "derive the palette from this base colour instead of a preset")
	f.StringVar(&o.harmony, "harmony", "", "harmony rule used with --base-colour")
	f.Float64Var(&o.offset, "offset", 0, "lightness offset used with --base-colour")
	f.StringVarP(&o.typography, "typography", "t", "", "typography preset")
	f.StringVar(&o.ratio, "ratio", "", "type scale ratio, overriding the preset's")
	f.Float64Var(&o.baseSize, "base-size", 0, "base font size in rem")
	f.BoolVar(&o.darkMode, "dark-mode", true, "emit dark mode tokens")
	f.BoolVar(&o.minify, "minify", false, "minify CSS output")
	f.StringVarP(&o.outputDir, "output-dir", "d", "", "directory generated files are written under")
	return o
}

// apply copies every flag the user set onto cfg.
func (o *overrides) apply(cfg *config.Config) error {
	f := o.cmd.Flags()
	if f.Changed("palette") {
		cfg.Palette = o.palette
		cfg.BaseColour = ""
	}
	if f.Changed("base-colour") {
		cfg.BaseColour = o.baseColour
	}
	if f.Changed("harmony") {
		cfg.Harmony = o.harmony
	}
	if f.Changed("offset") {
		cfg.LightnessOffset = o.offset
	}
	if f.Changed("typography") {
		cfg.Typography = o.typography
	}
	if f.Changed("ratio") {
		cfg.Ratio = o.ratio
	}
	if f.Changed("base-size") {
		cfg.BaseSize = o.baseSize
	}
	if f.Changed("dark-mode") {
		cfg.DarkMode = o.darkMode
	}
	if f.Changed("minify") {
		cfg.Minify = o.minify
	}
	if f.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	return cfg.Validate()
}
