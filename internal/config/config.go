// Package config loads oltre settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/typography"
)

// FileName is the config file looked up in the working directory and under
// the user config directory.
const FileName = "oltre.yaml"

// Config holds every setting that shapes a generated token set.
type Config struct {
	// Palette selects a preset. Ignored when BaseColour is set.
	Palette string `yaml:"palette" json:"palette"`

	// BaseColour, when set, derives the palette from a harmony rule.
	BaseColour      string  `yaml:"base_colour" json:"base_colour,omitempty"`
	Harmony         string  `yaml:"harmony" json:"harmony"`
	LightnessOffset float64 `yaml:"lightness_offset" json:"lightness_offset,omitempty"`

	// CustomColours are merged over the palette by name.
	CustomColours map[string]string `yaml:"custom_colours" json:"custom_colours,omitempty"`

	Typography string `yaml:"typography" json:"typography"`

	// Ratio overrides the typography preset's scale ratio. It accepts a named
	// interval ("perfect-fourth") or a number.
	Ratio    string  `yaml:"ratio" json:"ratio,omitempty"`
	BaseSize float64 `yaml:"base_size" json:"base_size"`

	DarkMode bool `yaml:"dark_mode" json:"dark_mode"`
	Minify   bool `yaml:"minify" json:"minify"`

	Outputs    []string `yaml:"outputs" json:"outputs"`
	OutputDir  string   `yaml:"output_dir" json:"output_dir"`
	ListenAddr string   `yaml:"listen_addr" json:"listen_addr"`

	// Plugins maps an external output plugin name to its executable.
	Plugins         map[string]string `yaml:"plugins" json:"plugins,omitempty"`
	EnabledPlugins  []string          `yaml:"enabled_plugins" json:"enabled_plugins,omitempty"`
	DisabledPlugins []string          `yaml:"disabled_plugins" json:"disabled_plugins,omitempty"`

	LogLevel string `yaml:"log_level" json:"log_level,omitempty"`

	// Source is the file the config was read from, empty for defaults.
	Source string `yaml:"-" json:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Palette:    colour.DefaultPreset,
		Harmony:    string(colour.HarmonyComplementary),
		Typography: typography.DefaultPreset,
		BaseSize:   typography.DefaultBase,
		DarkMode:   true,
		Minify:     false,
		Outputs:    []string{"css", "themejson"},
		OutputDir:  ".",
		ListenAddr: "127.0.0.1:8787",
		LogLevel:   "info",
	}
}

// Discover returns the first config file found in the working directory or
// the user config directory, or an empty string when there is none.
func Discover() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "oltre", FileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Load reads path over the defaults. An empty path triggers Discover.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Discover()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 - user-specified config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

// ApplyEnv overlays OLTRE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("OLTRE_PALETTE"); ok && v != "" {
		c.Palette = v
		c.BaseColour = ""
	}
	if v, ok := os.LookupEnv("OLTRE_BASE_COLOUR"); ok && v != "" {
		c.BaseColour = v
	}
	if v, ok := os.LookupEnv("OLTRE_HARMONY"); ok && v != "" {
		c.Harmony = v
	}
	if v, ok := os.LookupEnv("OLTRE_TYPOGRAPHY"); ok && v != "" {
		c.Typography = v
	}
	if v, ok := os.LookupEnv("OLTRE_RATIO"); ok && v != "" {
		c.Ratio = v
	}
	if v, ok := os.LookupEnv("OLTRE_OUTPUT_DIR"); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := os.LookupEnv("OLTRE_LISTEN_ADDR"); ok && v != "" {
		c.ListenAddr = v
	}
	if v, ok := os.LookupEnv("OLTRE_DARK_MODE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("OLTRE_DARK_MODE: %w", err)
		}
		c.DarkMode = b
	}
	if v, ok := os.LookupEnv("OLTRE_DISABLED_PLUGINS"); ok && v != "" {
		c.DisabledPlugins = ParseList(v)
	}
	if v, ok := os.LookupEnv("OLTRE_ENABLED_PLUGINS"); ok && v != "" {
		c.EnabledPlugins = ParseList(v)
	}
	if v, ok := os.LookupEnv("OLTRE_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks every field that can be checked without building tokens.
func (c *Config) Validate() error {
	if c.BaseColour != "" {
		if _, err := colour.ParseHex(c.BaseColour); err != nil {
			return fmt.Errorf("base_colour: %w", err)
		}
		if _, err := colour.ParseHarmonyRule(c.Harmony); err != nil {
			return fmt.Errorf("harmony: %w", err)
		}
	} else if _, err := colour.Preset(c.Palette); err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	if math.IsNaN(c.LightnessOffset) || c.LightnessOffset < -100 || c.LightnessOffset > 100 {
		return fmt.Errorf("lightness_offset: %v must be between -100 and 100", c.LightnessOffset)
	}

	for name, hex := range c.CustomColours {
		if !colour.IsValidName(name) {
			return fmt.Errorf("custom_colours: colour name %q must match [a-z0-9-]+", name)
		}
		if _, err := colour.ParseHex(hex); err != nil {
			return fmt.Errorf("custom_colours.%s: %w", name, err)
		}
	}

	if _, err := typography.GetPreset(c.Typography); err != nil {
		return fmt.Errorf("typography: %w", err)
	}
	if c.Ratio != "" {
		if _, err := typography.ParseRatio(c.Ratio); err != nil {
			return fmt.Errorf("ratio: %w", err)
		}
	}
	if math.IsNaN(c.BaseSize) || math.IsInf(c.BaseSize, 0) || c.BaseSize <= 0 {
		return fmt.Errorf("base_size: %v must be a positive number", c.BaseSize)
	}

	for _, o := range c.Outputs {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("outputs: empty output name")
		}
	}
	for name, path := range c.Plugins {
		if name == "" || path == "" {
			return fmt.Errorf("plugins: name and path are required (got %q=%q)", name, path)
		}
	}

	if c.LogLevel != "" && hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}

	return nil
}

// ScaleRatio resolves the ratio override, falling back to the preset's.
func (c *Config) ScaleRatio(preset typography.Preset) (float64, error) {
	if c.Ratio == "" {
		return preset.Ratio, nil
	}
	return typography.ParseRatio(c.Ratio)
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseList splits a comma-separated list, dropping blanks.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
