// Command oltre-scss is an external oltre output plugin that writes the
// token set as Sass variables and maps.
//
// Build it and point the config at the binary:
//
//	go build -o ~/.local/bin/oltre-scss ./contrib/plugins/output/scss
//
//	plugins:
//	  scss: ~/.local/bin/oltre-scss
//
// Plugin args: "prefix" (variable prefix, default none) and "maps" (emit
// $colors / $font-sizes maps, default true).
package main

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/oltre/pkg/plugin"
)

const (
	// Version is the plugin version reported by --plugin-info.
	Version = "0.1.0"
	// FileName is the single file the plugin generates.
	FileName = "_tokens.scss"
)

// ScssPlugin implements plugin.OutputPlugin.
type ScssPlugin struct{}

// Generate renders the Sass partial.
func (p *ScssPlugin) Generate(_ context.Context, tokens plugin.TokenData) (map[string][]byte, error) {
	if len(tokens.Colours) == 0 {
		return nil, fmt.Errorf("token data has no colours")
	}
	opts := optionsFrom(tokens.PluginArgs)
	return map[string][]byte{FileName: render(tokens, opts)}, nil
}

// PostExecute has nothing to do once the partial is written.
func (p *ScssPlugin) PostExecute(context.Context, []string) error {
	return nil
}

// GetMetadata describes the plugin.
func (p *ScssPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "scss",
		Version:     Version,
		Description: "Sass variables and maps (" + FileName + ")",
	}
}

// GetFlagHelp documents the plugin args.
func (p *ScssPlugin) GetFlagHelp() []plugin.FlagHelp {
	return []plugin.FlagHelp{
		{Name: "prefix", Type: "string", Default: "", Description: "prefix for every variable name"},
		{Name: "maps", Type: "bool", Default: "true", Description: "emit $colors and $font-sizes maps"},
	}
}

type options struct {
	prefix string
	maps   bool
}

func optionsFrom(args map[string]any) options {
	opts := options{maps: true}
	if v, ok := args["prefix"].(string); ok {
		opts.prefix = strings.TrimSuffix(v, "-")
		if opts.prefix != "" {
			opts.prefix += "-"
		}
	}
	if v, ok := args["maps"].(bool); ok {
		opts.maps = v
	}
	return opts
}

func render(tokens plugin.TokenData, opts options) []byte {
	var b bytes.Buffer
	v := func(name string) string { return "$" + opts.prefix + name }

	fmt.Fprintf(&b, "// Generated by oltre from the %q palette. Do not edit.\n\n", tokens.Palette)

	b.WriteString("// Colours\n")
	for _, c := range tokens.Colours {
		fmt.Fprintf(&b, "%s: %s;\n", v("color-"+c.Name), c.Hex)
	}

	writeAliases(&b, "Light mode", tokens.Light, v, "")
	if len(tokens.Dark) > 0 {
		writeAliases(&b, "Dark mode", tokens.Dark, v, "-dark")
	}

	ty := tokens.Typography
	b.WriteString("\n// Typography\n")
	fmt.Fprintf(&b, "%s: %s;\n", v("font-heading"), ty.Heading.Stack)
	fmt.Fprintf(&b, "%s: %s;\n", v("font-body"), ty.Body.Stack)
	fmt.Fprintf(&b, "%s: %g;\n", v("line-height-base"), ty.LineHeight)
	if ty.HeadingLetterSpacing != "" {
		fmt.Fprintf(&b, "%s: %s;\n", v("letter-spacing-heading"), ty.HeadingLetterSpacing)
	}
	for _, s := range ty.Steps {
		fmt.Fprintf(&b, "%s: %s;\n", v("font-size-"+s.Name), s.Clamp)
	}

	if opts.maps {
		b.WriteString("\n$" + opts.prefix + "colors: (\n")
		for _, c := range tokens.Colours {
			fmt.Fprintf(&b, "  %q: %s,\n", c.Name, v("color-"+c.Name))
		}
		b.WriteString(");\n")

		b.WriteString("\n$" + opts.prefix + "font-sizes: (\n")
		for _, s := range ty.Steps {
			fmt.Fprintf(&b, "  %q: %s,\n", s.Name, v("font-size-"+s.Name))
		}
		b.WriteString(");\n")
	}

	return b.Bytes()
}

func writeAliases(b *bytes.Buffer, title string, aliases map[string]string, v func(string) string, suffix string) {
	if len(aliases) == 0 {
		return
	}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(b, "\n// %s\n", title)
	for _, name := range names {
		fmt.Fprintf(b, "%s: %s;\n", v("color-"+name+suffix), v("color-"+aliases[name]))
	}
}

func main() {
	plugin.Serve(&ScssPlugin{})
}
