package typography

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultPreset is used when no typography preset is configured or the
// configured one is unknown to the caller.
const DefaultPreset = "modern"

// HeadingLineHeight is the fixed line height applied to headings.
const HeadingLineHeight = 1.2

const systemStack = `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`

// Font describes one font family and the weights to load.
type Font struct {
	Family   string `json:"family" yaml:"family"`
	Category string `json:"category" yaml:"category"`
	Weights  []int  `json:"weights" yaml:"weights"`
	Google   bool   `json:"google" yaml:"google"`
}

// Stack returns the CSS font-family value with the category as fallback.
func (f Font) Stack() string {
	return f.Family + ", " + f.Category
}

// Preset pairs a heading and body font with scale and rhythm settings.
type Preset struct {
	Key                  string  `json:"key"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Heading              Font    `json:"heading"`
	Body                 Font    `json:"body"`
	Ratio                float64 `json:"ratio"`
	LineHeight           float64 `json:"line_height"`
	HeadingLetterSpacing string  `json:"heading_letter_spacing"`
	BodyLetterSpacing    string  `json:"body_letter_spacing"`
}

// Scale builds the modular scale for the preset's ratio.
func (p Preset) Scale(base float64) (*Scale, error) {
	return BuildScale(base, p.Ratio)
}

// FontsURL returns the Google Fonts stylesheet URL for the preset, or an empty
// string when it only uses system fonts.
func (p Preset) FontsURL() string {
	return GoogleFontsURL(p.Heading, p.Body)
}

var presets = map[string]Preset{
	"elegant": {
		Name:                 "Elegant",
		Description:          "Classic serif elegance with modern sensibility",
		Heading:              Font{Family: "Playfair Display", Category: "serif", Weights: []int{400, 500, 700, 900}, Google: true},
		Body:                 Font{Family: "Source Sans Pro", Category: "sans-serif", Weights: []int{300, 400, 600, 700}, Google: true},
		Ratio:                1.333,
		LineHeight:           1.6,
		HeadingLetterSpacing: "-0.025em",
		BodyLetterSpacing:    "0",
	},
	"modern": {
		Name:                 "Modern",
		Description:          "Clean, contemporary sans-serif for digital-first design",
		Heading:              Font{Family: "Inter", Category: "sans-serif", Weights: []int{300, 400, 500, 600, 700, 800}, Google: true},
		Body:                 Font{Family: "Inter", Category: "sans-serif", Weights: []int{300, 400, 500, 600}, Google: true},
		Ratio:                1.25,
		LineHeight:           1.6,
		HeadingLetterSpacing: "-0.02em",
		BodyLetterSpacing:    "0",
	},
	"editorial": {
		Name:                 "Editorial",
		Description:          "Traditional newspaper-inspired typography for readability",
		Heading:              Font{Family: "Crimson Text", Category: "serif", Weights: []int{400, 600, 700}, Google: true},
		Body:                 Font{Family: "Crimson Text", Category: "serif", Weights: []int{400, 600}, Google: true},
		Ratio:                1.2,
		LineHeight:           1.7,
		HeadingLetterSpacing: "-0.01em",
		BodyLetterSpacing:    "0.01em",
	},
	"minimalist": {
		Name:                 "Minimalist",
		Description:          "Ultra-clean system fonts for maximum performance",
		Heading:              Font{Family: systemStack, Category: "sans-serif", Weights: []int{300, 400, 500, 600, 700}},
		Body:                 Font{Family: systemStack, Category: "sans-serif", Weights: []int{300, 400, 500, 600}},
		Ratio:                1.25,
		LineHeight:           1.6,
		HeadingLetterSpacing: "-0.015em",
		BodyLetterSpacing:    "0",
	},
	"creative": {
		Name:                 "Creative",
		Description:          "Bold, expressive typography for creative portfolios",
		Heading:              Font{Family: "Montserrat", Category: "sans-serif", Weights: []int{300, 400, 500, 600, 700, 800, 900}, Google: true},
		Body:                 Font{Family: "Open Sans", Category: "sans-serif", Weights: []int{300, 400, 600, 700}, Google: true},
		Ratio:                1.414,
		LineHeight:           1.5,
		HeadingLetterSpacing: "-0.03em",
		BodyLetterSpacing:    "0",
	},
}

// PresetNames returns the preset keys in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// GetPreset looks up a preset by key. The returned value owns its slices.
func GetPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	p, ok := presets[key]
	if !ok {
		return Preset{}, fmt.Errorf("unknown typography preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	p.Key = key
	p.Heading.Weights = append([]int(nil), p.Heading.Weights...)
	p.Body.Weights = append([]int(nil), p.Body.Weights...)
	return p, nil
}

// PresetOrDefault returns the named preset, falling back to DefaultPreset.
func PresetOrDefault(name string) Preset {
	if p, err := GetPreset(name); err == nil {
		return p
	}
	p, _ := GetPreset(DefaultPreset)
	return p
}

// Combination is a suggested heading/body pairing.
type Combination struct {
	Name    string `json:"name"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Mood    string `json:"mood"`
}

var combinations = []Combination{
	{Name: "Classic Contrast", Heading: "Playfair Display", Body: "Lato", Mood: "elegant"},
	{Name: "Modern Harmony", Heading: "Poppins", Body: "Inter", Mood: "contemporary"},
	{Name: "Editorial Authority", Heading: "Merriweather", Body: "Source Sans Pro", Mood: "professional"},
	{Name: "Creative Expression", Heading: "Oswald", Body: "Nunito Sans", Mood: "dynamic"},
}

// FontCombinations returns every known pairing.
func FontCombinations() []Combination {
	out := make([]Combination, len(combinations))
	copy(out, combinations)
	return out
}

// Recommendations returns the pairings that use family as heading or body.
// Matching ignores case.
func Recommendations(family string) []Combination {
	var out []Combination
	for _, c := range combinations {
		if strings.EqualFold(c.Heading, family) || strings.EqualFold(c.Body, family) {
			out = append(out, c)
		}
	}
	return out
}

// GoogleFontsURL builds a css2 stylesheet URL loading every Google font given.
// System fonts are skipped and a family listed twice is loaded once with the
// union of its weights.
func GoogleFontsURL(fonts ...Font) string {
	var order []string
	weights := make(map[string]map[int]bool)
	for _, f := range fonts {
		if !f.Google || f.Family == "" {
			continue
		}
		if _, seen := weights[f.Family]; !seen {
			order = append(order, f.Family)
			weights[f.Family] = make(map[int]bool)
		}
		for _, w := range f.Weights {
			weights[f.Family][w] = true
		}
	}
	if len(order) == 0 {
		return ""
	}

	params := make([]string, 0, len(order))
	for _, family := range order {
		ws := make([]int, 0, len(weights[family]))
		for w := range weights[family] {
			ws = append(ws, w)
		}
		sort.Ints(ws)

		param := "family=" + strings.ReplaceAll(family, " ", "+")
		if len(ws) > 0 {
			parts := make([]string, len(ws))
			for i, w := range ws {
				parts[i] = strconv.Itoa(w)
			}
			param += ":wght@" + strings.Join(parts, ";")
		}
		params = append(params, param)
	}

	return "https://fonts.googleapis.com/css2?" + strings.Join(params, "&") + "&display=swap"
}
