// Package tailwind provides a Tailwind CSS output plugin.
package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/oltre/internal/plugin/output/template"
	"github.com/jmylchreest/oltre/internal/tokens"
	"github.com/jmylchreest/oltre/internal/typography"
)

//go:embed *.tmpl
var templates embed.FS

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string // "config" (v3 tailwind.config.js) or "css" (v4 @theme)
	outputDir string
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return NewWithFormat("config")
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{format: format}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a Tailwind CSS theme (tailwind.config.js or a v4 @theme stylesheet)"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", "config", "Output format (config or css)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: configured output_dir)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != "css" && p.format != "config" {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", p.format)
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

// Generate creates the Tailwind theme from the token set.
func (p *Plugin) Generate(set *tokens.Set) (map[string][]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("token set cannot be nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	name, tmplName := "tailwind.config.js", "tailwind.config.js.tmpl"
	if p.format == "css" {
		name, tmplName = "tailwind.theme.css", "theme.css.tmpl"
	}

	content, err := render(tmplName, prepareData(set))
	if err != nil {
		return nil, err
	}
	return map[string][]byte{name: content}, nil
}

func render(tmplName string, data Data) ([]byte, error) {
	tmplContent, _, err := tmplloader.New("tailwind", templates).Load(tmplName)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New(tmplName).Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", tmplName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// Data holds the values exposed to the Tailwind templates.
type Data struct {
	Set           *tokens.Set
	Name          string
	DarkMode      bool
	Colours       []tokens.Colour
	Light         []tokens.Alias
	Typography    typography.Preset
	Sizes         []typography.FluidSize
	HeadingFamily string
	BodyFamily    string
}

func prepareData(set *tokens.Set) Data {
	return Data{
		Set:           set,
		Name:          set.Name(),
		DarkMode:      set.DarkMode,
		Colours:       set.Colours(),
		Light:         set.Semantic(tokens.ModeLight),
		Typography:    set.Typography,
		Sizes:         set.Sizes(),
		HeadingFamily: jsFontList(set.Typography.Heading),
		BodyFamily:    jsFontList(set.Typography.Body),
	}
}

// jsFontList renders a font stack as the items of a JavaScript array of
// single-quoted strings.
func jsFontList(f typography.Font) string {
	parts := strings.Split(f.Stack(), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		if name == "" {
			continue
		}
		out = append(out, "'"+strings.ReplaceAll(name, "'", `\'`)+"'")
	}
	return strings.Join(out, ", ")
}
