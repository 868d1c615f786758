package manager

import (
	"context"
	"fmt"
	"maps"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/plugin/executor"
	"github.com/jmylchreest/oltre/internal/tokens"
	"github.com/jmylchreest/oltre/internal/typography"
	"github.com/jmylchreest/oltre/pkg/plugin"
)

// ExternalOutputPlugin wraps an external executable as an output plugin.
type ExternalOutputPlugin struct {
	name        string
	description string
	path        string
	args        map[string]any
	dryRun      bool
	logger      hclog.Logger
}

// NewExternalOutputPlugin creates a new external output plugin wrapper.
func NewExternalOutputPlugin(name, description, path string, logger hclog.Logger) *ExternalOutputPlugin {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if description == "" {
		description = "External plugin " + path
	}
	return &ExternalOutputPlugin{
		name:        name,
		description: description,
		path:        path,
		logger:      logger,
	}
}

// Name returns the plugin's name.
func (p *ExternalOutputPlugin) Name() string {
	return p.name
}

// Description returns the plugin's description.
func (p *ExternalOutputPlugin) Description() string {
	return p.description
}

// Path returns the plugin executable.
func (p *ExternalOutputPlugin) Path() string {
	return p.path
}

// SetArgs sets custom arguments passed through to the plugin.
func (p *ExternalOutputPlugin) SetArgs(args map[string]any) {
	p.args = maps.Clone(args)
}

// SetDryRun marks the token payload as a dry run.
func (p *ExternalOutputPlugin) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// Generate executes the external plugin and returns its output.
func (p *ExternalOutputPlugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("token set cannot be nil")
	}

	ctx := context.Background()
	exec, err := executor.New(ctx, p.path, executor.WithLogger(p.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin executor: %w", err)
	}
	defer exec.Close()

	files, err := exec.ExecuteOutput(ctx, ToTokenData(set, p.args, p.dryRun))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w", err)
	}
	if files == nil {
		files = make(map[string][]byte)
	}
	return files, nil
}

// PostExecute calls the external plugin's post-execute hook.
// Implements the output.PostExecuteHook interface.
func (p *ExternalOutputPlugin) PostExecute(ctx context.Context, writtenFiles []string) error {
	exec, err := executor.New(ctx, p.path, executor.WithLogger(p.logger))
	if err != nil {
		return fmt.Errorf("failed to create plugin executor: %w", err)
	}
	defer exec.Close()

	return exec.PostExecute(ctx, writtenFiles)
}

// RegisterFlags is a no-op for external plugins; they receive PluginArgs instead.
func (p *ExternalOutputPlugin) RegisterFlags(_ *cobra.Command) {}

// Validate checks if the plugin is valid. Failures surface at Generate.
func (p *ExternalOutputPlugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory.
func (p *ExternalOutputPlugin) DefaultOutputDir() string {
	return "."
}

// ToTokenData converts a token set into the plugin wire payload.
func ToTokenData(set *tokens.Set, pluginArgs map[string]any, dryRun bool) plugin.TokenData {
	colours := set.Colours()
	wire := make([]plugin.TokenColour, len(colours))
	for i, c := range colours {
		wire[i] = plugin.TokenColour{
			Name:      c.Name,
			Hex:       c.Hex,
			RGB:       plugin.RGBColour{R: c.RGB.R, G: c.RGB.G, B: c.RGB.B},
			HSL:       plugin.HSLColour{H: c.HSL.H, S: c.HSL.S, L: c.HSL.L},
			Luminance: c.Luminance,
		}
	}

	data := plugin.TokenData{
		Palette:    set.Name(),
		Colours:    wire,
		Light:      aliasMap(set.Semantic(tokens.ModeLight)),
		Typography: typographyData(set),
		PluginArgs: pluginArgs,
		DryRun:     dryRun,
	}
	if set.DarkMode {
		data.Dark = aliasMap(set.Semantic(tokens.ModeDark))
	}
	return data
}

func aliasMap(aliases []tokens.Alias) map[string]string {
	m := make(map[string]string, len(aliases))
	for _, a := range aliases {
		m[a.Name] = a.Target
	}
	return m
}

func typographyData(set *tokens.Set) plugin.TypographyData {
	preset := set.Typography
	sizes := set.Sizes()
	steps := make([]plugin.ScaleStep, len(sizes))
	for i, s := range sizes {
		steps[i] = plugin.ScaleStep{
			Name:      string(s.Step),
			Value:     s.Value,
			Min:       s.Min,
			Preferred: s.Preferred,
			Max:       s.Max,
			Clamp:     s.CSS(),
		}
	}

	return plugin.TypographyData{
		Preset:               preset.Key,
		Heading:              fontData(preset.Heading),
		Body:                 fontData(preset.Body),
		Ratio:                set.Scale.Ratio,
		Base:                 set.Scale.Base,
		LineHeight:           preset.LineHeight,
		HeadingLetterSpacing: preset.HeadingLetterSpacing,
		BodyLetterSpacing:    preset.BodyLetterSpacing,
		FontsURL:             set.FontsURL(),
		Steps:                steps,
	}
}

func fontData(f typography.Font) plugin.FontData {
	return plugin.FontData{
		Family:   f.Family,
		Category: f.Category,
		Stack:    f.Stack(),
		Weights:  append([]int(nil), f.Weights...),
	}
}
