// Package css provides the CSS custom properties output plugin.
package css

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/oltre/internal/plugin/output/template"
	"github.com/jmylchreest/oltre/internal/tokens"
	"github.com/jmylchreest/oltre/internal/typography"
)

//go:embed *.tmpl
var templates embed.FS

// FileName is the stylesheet written by the plugin.
const FileName = "tokens.css"

// Plugin implements the output.Plugin interface for CSS custom properties.
type Plugin struct {
	outputDir string
	minify    bool
	utilities bool
	logger    hclog.Logger
}

// New creates a new CSS output plugin.
func New() *Plugin {
	return &Plugin{
		utilities: true,
		logger:    hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate CSS custom properties, dark mode overrides and utility classes"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: configured output_dir)")
	cmd.Flags().BoolVar(&p.minify, "css.minify", false, "Minify the stylesheet (also enabled by minify: true in config)")
	cmd.Flags().BoolVar(&p.utilities, "css.utilities", true, "Emit .text-/.bg-/.border-/.fill-/.stroke- colour classes")
}

// SetLogger sets the logger used for template resolution.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
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

// Generate renders tokens.css from the token set.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("token set cannot be nil")
	}

	content, err := Render(set, RenderOptions{
		Utilities: p.utilities,
		Minify:    p.minify || set.Minify,
		Logger:    p.logger,
	})
	if err != nil {
		return nil, err
	}

	return map[string][]byte{FileName: content}, nil
}

// RenderOptions controls Render.
type RenderOptions struct {
	Utilities bool
	Minify    bool
	Logger    hclog.Logger
}

// Render produces the stylesheet. The preview server calls it directly.
func Render(set *tokens.Set, opts RenderOptions) ([]byte, error) {
	loader := tmplloader.New("css", templates).WithLogger(opts.Logger)
	tmplContent, _, err := loader.Load("tokens.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read CSS template: %w", err)
	}

	tmpl, err := template.New("tokens.css").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, prepareData(set, opts.Utilities)); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}

	if opts.Minify {
		return []byte(common.MinifyCSS(buf.String())), nil
	}
	return buf.Bytes(), nil
}

// Data holds the values exposed to the CSS template.
type Data struct {
	Name              string
	FontsURL          string
	Colours           []tokens.Colour
	Light             []tokens.Alias
	Dark              []tokens.Alias
	Typography        typography.Preset
	Sizes             []typography.FluidSize
	Headings          []Heading
	HeadingLineHeight float64
	DarkMode          bool
	Utilities         bool
}

// Heading maps a heading selector onto a scale step.
type Heading struct {
	Selector string
	Step     typography.Step
}

var headings = []Heading{
	{"h1, .h1", typography.Step4XL},
	{"h2, .h2", typography.Step3XL},
	{"h3, .h3", typography.Step2XL},
	{"h4, .h4", typography.StepXL},
	{"h5, .h5", typography.StepLG},
	{"h6, .h6", typography.StepBase},
}

func prepareData(set *tokens.Set, utilities bool) Data {
	return Data{
		Name:              set.Name(),
		FontsURL:          set.FontsURL(),
		Colours:           set.Colours(),
		Light:             set.Semantic(tokens.ModeLight),
		Dark:              set.Semantic(tokens.ModeDark),
		Typography:        set.Typography,
		Sizes:             set.Sizes(),
		Headings:          headings,
		HeadingLineHeight: typography.HeadingLineHeight,
		DarkMode:          set.DarkMode,
		Utilities:         utilities,
	}
}
