package colour

import (
	"errors"
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "six digits", input: "#1e40af", want: RGB{R: 0x1e, G: 0x40, B: 0xaf}},
		{name: "upper case", input: "#FF8800", want: RGB{R: 255, G: 136, B: 0}},
		{name: "shorthand", input: "#f80", want: RGB{R: 255, G: 136, B: 0}},
		{name: "shorthand grey", input: "#abc", want: RGB{R: 0xaa, G: 0xbb, B: 0xcc}},
		{name: "missing hash", input: "1e40af", wantErr: true},
		{name: "four digits", input: "#1234", wantErr: true},
		{name: "bad digit", input: "#12345g", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "eight digits", input: "#1e40afff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrInvalidColourFormat) {
					t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColourFormat", tt.input, err)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Arg != "hex" || verr.Value != tt.input {
					t.Errorf("ParseHex(%q) error = %#v, want ValidationError for hex", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want HSL
	}{
		{"#ff0000", HSL{0, 100, 50}},
		{"#00ff00", HSL{120, 100, 50}},
		{"#0000ff", HSL{240, 100, 50}},
		{"#ffffff", HSL{0, 0, 100}},
		{"#000000", HSL{0, 0, 0}},
		{"#808080", HSL{0, 0, 50}},
		{"#1e40af", HSL{226, 71, 40}},
		{"#f0f", HSL{300, 100, 50}},
		{"#000011", HSL{240, 100, 3}},
		// Hue 359.53 rounds up to 360 and wraps to 0.
		{"#ff0002", HSL{0, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := HexToHSL(tt.hex)
			if err != nil {
				t.Fatalf("HexToHSL(%q) error = %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("HexToHSL(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}

	if _, err := HexToHSL("red"); !errors.Is(err, ErrInvalidColourFormat) {
		t.Errorf("HexToHSL(red) error = %v, want ErrInvalidColourFormat", err)
	}
}

func TestHSLToHex(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    string
	}{
		{0, 100, 50, "#ff0000"},
		{120, 100, 50, "#00ff00"},
		{240, 100, 50, "#0000ff"},
		{180, 100, 50, "#00ffff"},
		{0, 0, 100, "#ffffff"},
		{0, 0, 0, "#000000"},
		{0, 0, 50, "#808080"},
		{-120, 100, 50, "#0000ff"},
		{480, 100, 50, "#00ff00"},
		{0, 150, 50, "#ff0000"},
	}

	for _, tt := range tests {
		if got := HSLToHex(tt.h, tt.s, tt.l); got != tt.want {
			t.Errorf("HSLToHex(%v, %v, %v) = %s, want %s", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
}

func TestHSLRangeProperty(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				hsl := c.HSL()
				if hsl.H < 0 || hsl.H >= 360 {
					t.Fatalf("%s: hue %v out of [0,360)", c.Hex(), hsl.H)
				}
				if hsl.S < 0 || hsl.S > 100 || hsl.L < 0 || hsl.L > 100 {
					t.Fatalf("%s: saturation/lightness out of range: %v", c.Hex(), hsl)
				}
			}
		}
	}
}

func channelDrift(a, b RGB) int {
	d := 0
	for _, p := range [][2]uint8{{a.R, b.R}, {a.G, b.G}, {a.B, b.B}} {
		diff := int(p[0]) - int(p[1])
		if diff < 0 {
			diff = -diff
		}
		d = max(d, diff)
	}
	return d
}

func TestHSLRoundTripTolerance(t *testing.T) {
	tests := []string{
		"#1e40af", "#ff0000", "#00ff00", "#0000ff", "#ffffff", "#000000",
		"#808080", "#767676", "#f59e0b", "#ef4444",
	}
	for _, hex := range tests {
		hsl, err := HexToHSL(hex)
		if err != nil {
			t.Fatalf("HexToHSL(%s) error = %v", hex, err)
		}
		back := HSLToHex(float64(hsl.H), float64(hsl.S), float64(hsl.L))
		if d := channelDrift(MustParseHex(hex), MustParseHex(back)); d > 1 {
			t.Errorf("round trip %s -> %v -> %s drifts %d, want <= 1", hex, hsl, back, d)
		}
	}

	for v := 0; v < 256; v++ {
		grey := RGB{R: uint8(v), G: uint8(v), B: uint8(v)}
		if d := channelDrift(grey, grey.HSL().RGB()); d > 1 {
			t.Fatalf("grey %s drifts %d, want <= 1", grey.Hex(), d)
		}
	}
}

func TestHSLRoundTripBound(t *testing.T) {
	// Whole-unit HSL can move a saturated channel by a few steps; 5 is the
	// worst case over all 2^24 colours.
	const maxDrift = 5

	worst := 0
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				hsl, err := HexToHSL(c.Hex())
				if err != nil {
					t.Fatalf("HexToHSL(%s) error = %v", c.Hex(), err)
				}
				d := channelDrift(c, hsl.RGB())
				if d > maxDrift {
					t.Fatalf("round trip %s -> %v -> %s drifts %d, want <= %d", c.Hex(), hsl, hsl.Hex(), d, maxDrift)
				}
				worst = max(worst, d)

				// At full precision the conversion is lossless up to channel rounding.
				h, s, l := rgbToHSL(c)
				if d := channelDrift(c, HSLToRGB(h*360, s*100, l*100)); d > 1 {
					t.Fatalf("exact round trip %s drifts %d", c.Hex(), d)
				}
			}
		}
	}
	if worst <= 1 {
		t.Errorf("rounded round trip never drifted beyond 1; HSL is not whole units")
	}
}

func TestHSLOutputFormat(t *testing.T) {
	hsl := HSL{H: 0, S: 71, L: 40}
	if got := hsl.String(); got != "hsl(0, 71%, 40%)" {
		t.Errorf("String() = %q", got)
	}
	if got := hsl.Components(); got != "0, 71%, 40%" {
		t.Errorf("Components() = %q", got)
	}

	hex := HSLToHex(200, 50, 50)
	if len(hex) != 7 || hex != toLower(hex) {
		t.Errorf("HSLToHex output %q must be lowercase #rrggbb", hex)
	}
}

func TestCheckHSL(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name    string
		h, s, l float64
		wantArg string
	}{
		{name: "finite", h: 226, s: 71, l: 40},
		{name: "out of range but finite", h: -480, s: 150, l: -3},
		{name: "NaN hue", h: nan, s: 50, l: 50, wantArg: "h"},
		{name: "infinite saturation", h: 10, s: inf, l: 50, wantArg: "s"},
		{name: "negative infinite lightness", h: 10, s: 50, l: -inf, wantArg: "l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckHSL(tt.h, tt.s, tt.l)
			if tt.wantArg == "" {
				if err != nil {
					t.Errorf("CheckHSL() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidHSL) {
				t.Fatalf("CheckHSL() error = %v, want ErrInvalidHSL", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Arg != tt.wantArg {
				t.Errorf("CheckHSL() error = %#v, want arg %s", err, tt.wantArg)
			}
		})
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
