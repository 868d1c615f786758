package themejson

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jmylchreest/oltre/internal/colour"
	plugintesting "github.com/jmylchreest/oltre/internal/plugin/output/testing"
)

func TestThemeJSONPlugin(t *testing.T) {
	plugintesting.TestBasicInterface(t, New(), "themejson")
	plugintesting.TestGeneration(t, New(), []string{FileName})
	plugintesting.TestFlags(t, New(), "themejson")
}

func TestGenerateDocument(t *testing.T) {
	set := plugintesting.CreateTestSet(t, nil)

	files, err := New().Generate(set)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(files[FileName], &doc); err != nil {
		t.Fatalf("theme.json is not valid JSON: %v", err)
	}

	if doc.Version != 2 || doc.Schema == "" {
		t.Errorf("version = %d, schema = %q", doc.Version, doc.Schema)
	}

	palette := doc.Settings.Color.Palette
	if len(palette) != set.Palette.Len() {
		t.Fatalf("palette has %d entries, want %d", len(palette), set.Palette.Len())
	}
	if palette[0].Slug != colour.NamePrimary || palette[0].Name != "Primary" || palette[0].Color != "#1e40af" {
		t.Errorf("first palette entry = %+v", palette[0])
	}
	for _, e := range palette {
		if e.Slug == "neutral-50" && e.Name != "Neutral 50" {
			t.Errorf("neutral-50 name = %q, want Neutral 50", e.Name)
		}
	}

	families := doc.Settings.Typography.FontFamilies
	if len(families) != 2 || families[0].Slug != "heading" || families[1].FontFamily != "Inter, sans-serif" {
		t.Errorf("fontFamilies = %+v", families)
	}

	sizes := doc.Settings.Typography.FontSizes
	if len(sizes) != 8 {
		t.Fatalf("fontSizes has %d entries, want 8", len(sizes))
	}
	if sizes[2].Slug != "base" || sizes[2].Size != "clamp(0.875rem, 1.25vw, 1.125rem)" {
		t.Errorf("base size = %+v", sizes[2])
	}

	if doc.Styles.Color.Text != "var(--wp--preset--color--neutral-900)" {
		t.Errorf("styles.color.text = %q", doc.Styles.Color.Text)
	}
	if doc.Styles.Elements["heading"].Typography.LineHeight != "1.2" {
		t.Errorf("heading line height = %+v", doc.Styles.Elements["heading"])
	}
}

func TestGenerateWithoutNeutrals(t *testing.T) {
	set := plugintesting.CreateTestSet(t, nil)

	doc := Build(set, false)
	for _, e := range doc.Settings.Color.Palette {
		if strings.HasPrefix(e.Slug, "neutral-") {
			t.Errorf("neutral %s included", e.Slug)
		}
	}
	if len(doc.Settings.Color.Palette) != 6 {
		t.Errorf("palette has %d entries, want 6", len(doc.Settings.Color.Palette))
	}
}

func TestQuotedFontFamily(t *testing.T) {
	set := plugintesting.CreateTestSet(t, nil)
	set.Typography.Body.Family = `"Segoe UI", Roboto`

	files, err := New().Generate(set)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(files[FileName]), `\"Segoe UI\", Roboto`) {
		t.Error("quoted font family not encoded as a JSON string escape")
	}
}
