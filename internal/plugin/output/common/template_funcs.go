// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/tokens"
)

// TemplateFuncs returns the functions available to every output template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Colour access.
		"colour":  colourFunc,
		"resolve": resolveFunc,

		// Format conversion.
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,
		"hsl":       hslFunc,
		"hslSpaces": hslSpacesFunc,

		// Naming.
		"title":   TitleCase,
		"jsKey":   jsKeyFunc,
		"cssVar":  cssVarFunc,
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
		"replace": replaceFunc,
	}
}

// colourFunc returns a palette colour by name, failing the template when absent.
func colourFunc(set *tokens.Set, name string) (tokens.Colour, error) {
	c, ok := set.Colour(name)
	if !ok {
		return tokens.Colour{}, fmt.Errorf("colour %q not found", name)
	}
	return c, nil
}

// resolveFunc follows a semantic alias ("text", "surface") in a mode.
func resolveFunc(set *tokens.Set, mode, name string) (string, error) {
	c, ok := set.Resolve(name, tokens.Mode(mode))
	if !ok {
		return "", fmt.Errorf("colour %q not found in %s mode", name, mode)
	}
	return c.Hex(), nil
}

func hexFunc(c tokens.Colour) string {
	return c.Hex
}

func hexNoHashFunc(c tokens.Colour) string {
	return strings.TrimPrefix(c.Hex, "#")
}

func rgbFunc(c tokens.Colour) string {
	return c.RGB.String()
}

func hslFunc(c tokens.Colour) string {
	return c.HSL.String()
}

// hslSpacesFunc returns "h s% l%", the space-separated form used by Tailwind
// and shadcn style variables.
func hslSpacesFunc(c tokens.Colour) string {
	return fmt.Sprintf("%d %d%% %d%%", c.HSL.H, c.HSL.S, c.HSL.L)
}

// jsKeyFunc quotes a name unless it is a valid JavaScript identifier.
func jsKeyFunc(name string) string {
	if jsIdent.MatchString(name) {
		return name
	}
	return "'" + name + "'"
}

var jsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func cssVarFunc(name string) string {
	return "var(--color-" + name + ")"
}

func replaceFunc(old, replacement, s string) string {
	return strings.ReplaceAll(s, old, replacement)
}

// TitleCase turns "neutral-50" or "text_muted" into "Neutral 50" / "Text muted".
func TitleCase(name string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var (
	cssComment = regexp.MustCompile(`/\*[^*]*\*+([^/*][^*]*\*+)*/`)
	cssSpace   = regexp.MustCompile(`\s+`)
	cssPunct   = regexp.MustCompile(`\s*([{};:,>])\s*`)
)

// MinifyCSS strips comments and insignificant whitespace.
// Quoted strings are not special-cased; callers must not rely on runs of
// whitespace inside them.
func MinifyCSS(css string) string {
	css = cssComment.ReplaceAllString(css, "")
	css = cssSpace.ReplaceAllString(css, " ")
	css = cssPunct.ReplaceAllString(css, "$1")
	css = strings.ReplaceAll(css, ";}", "}")
	return strings.TrimSpace(css)
}

// ContrastLabel returns the colour (black or white) that reads best on bg,
// along with its WCAG grade.
func ContrastLabel(bg colour.RGB) (colour.RGB, string) {
	black := colour.RGB{}
	white := colour.RGB{R: 255, G: 255, B: 255}

	onWhite := colour.CheckContrast(white, bg)
	onBlack := colour.CheckContrast(black, bg)
	if onWhite.Ratio >= onBlack.Ratio {
		return white, onWhite.Grade()
	}
	return black, onBlack.Grade()
}
