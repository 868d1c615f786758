package common

import (
	"bytes"
	"strings"
	"testing"
	"text/template"

	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/tokens"
)

func createTestSet(t *testing.T) *tokens.Set {
	t.Helper()
	set, err := tokens.Build(config.Default())
	if err != nil {
		t.Fatalf("tokens.Build() error = %v", err)
	}
	return set
}

func execute(t *testing.T, text string, data any) (string, error) {
	t.Helper()
	tmpl, err := template.New("test").Funcs(TemplateFuncs()).Parse(text)
	if err != nil {
		t.Fatalf("Template parse error: %v", err)
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	return buf.String(), err
}

func TestTemplateFuncs_Colour(t *testing.T) {
	set := createTestSet(t)

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "hex", tmpl: `{{ colour . "primary" | hex }}`, want: "#1e40af"},
		{name: "hexNoHash", tmpl: `{{ colour . "primary" | hexNoHash }}`, want: "1e40af"},
		{name: "rgb", tmpl: `{{ colour . "primary" | rgb }}`, want: "rgb(30, 64, 175)"},
		{name: "hsl", tmpl: `{{ colour . "primary" | hsl }}`, want: "hsl(226, 71%, 40%)"},
		{name: "hslSpaces", tmpl: `{{ colour . "primary" | hslSpaces }}`, want: "226 71% 40%"},
		{name: "resolve light", tmpl: `{{ resolve . "light" "text" }}`, want: "#0f172a"},
		{name: "resolve dark", tmpl: `{{ resolve . "dark" "background" }}`, want: "#0f172a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.tmpl, set)
			if err != nil {
				t.Fatalf("Template execute error: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}

	if _, err := execute(t, `{{ colour . "nope" | hex }}`, set); err == nil {
		t.Error("missing colour should fail the template")
	}
}

func TestTemplateFuncs_Naming(t *testing.T) {
	tests := []struct {
		tmpl string
		want string
	}{
		{`{{ jsKey "primary" }}`, "primary"},
		{`{{ jsKey "neutral-50" }}`, "'neutral-50'"},
		{`{{ cssVar "accent" }}`, "var(--color-accent)"},
		{`{{ title "neutral-50" }}`, "Neutral 50"},
		{`{{ "a-b" | replace "-" "_" }}`, "a_b"},
	}
	for _, tt := range tests {
		got, err := execute(t, tt.tmpl, nil)
		if err != nil {
			t.Fatalf("%s: %v", tt.tmpl, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.tmpl, got, tt.want)
		}
	}
}

func TestMinifyCSS(t *testing.T) {
	in := `/* header */
:root {
  --color-primary: #1e40af;
  --font-size-base: clamp(0.875rem, 1.25vw, 1.125rem);
}

h1, h2 {
  font-family: var(--font-heading);
}
`
	want := ":root{--color-primary:#1e40af;--font-size-base:clamp(0.875rem,1.25vw,1.125rem)}h1,h2{font-family:var(--font-heading)}"
	if got := MinifyCSS(in); got != want {
		t.Errorf("MinifyCSS() = %q, want %q", got, want)
	}

	if got := MinifyCSS("a { b: c } /* x */ /** y **/"); strings.Contains(got, "x") || strings.Contains(got, "y") {
		t.Errorf("comments survived: %q", got)
	}
}

func TestContrastLabel(t *testing.T) {
	set := createTestSet(t)

	primary, _ := set.Palette.Get("primary")
	fg, grade := ContrastLabel(primary)
	if fg.Hex() != "#ffffff" || grade == "fail" {
		t.Errorf("ContrastLabel(primary) = %s %s, want white with a passing grade", fg.Hex(), grade)
	}

	light, _ := set.Palette.Get("neutral-50")
	if fg, _ := ContrastLabel(light); fg.Hex() != "#000000" {
		t.Errorf("ContrastLabel(neutral-50) = %s, want black", fg.Hex())
	}
}
