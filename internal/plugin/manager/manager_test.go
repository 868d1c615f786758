package manager

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/plugin/output"
	"github.com/jmylchreest/oltre/internal/tokens"
)

// Mock output plugin for testing.
type mockOutputPlugin struct {
	name string
}

func (m *mockOutputPlugin) Name() string        { return m.name }
func (m *mockOutputPlugin) Description() string { return "mock " + m.name }
func (m *mockOutputPlugin) Generate(_ *tokens.Set) (map[string][]byte, error) {
	return map[string][]byte{m.name + ".txt": []byte(m.name)}, nil
}
func (m *mockOutputPlugin) DefaultOutputDir() string       { return "." }
func (m *mockOutputPlugin) RegisterFlags(_ *cobra.Command) {}
func (m *mockOutputPlugin) Validate() error                { return nil }

func testSet(t *testing.T) *tokens.Set {
	t.Helper()
	set, err := tokens.Build(config.Default())
	if err != nil {
		t.Fatalf("tokens.Build() error = %v", err)
	}
	return set
}

func TestBuildRegistersBuiltins(t *testing.T) {
	m := NewBuilder().Build()

	want := []string{"css", "swatch", "tailwind", "themejson"}
	if got := m.Registry().List(); !slices.Equal(got, want) {
		t.Errorf("Registry().List() = %v, want %v", got, want)
	}
	if got := m.ListOutputPlugins(); !slices.Equal(got, want) {
		t.Errorf("ListOutputPlugins() = %v, want %v (all enabled by default)", got, want)
	}
}

func TestBuilderWithRegistryKeepsCustomPlugins(t *testing.T) {
	reg := output.NewRegistry()
	reg.Register(&mockOutputPlugin{name: "css"})
	reg.Register(&mockOutputPlugin{name: "scss"})

	m := NewBuilder().WithRegistry(reg).Build()

	p, ok := m.GetOutputPlugin("css")
	if !ok {
		t.Fatal("css plugin missing")
	}
	if _, isMock := p.(*mockOutputPlugin); !isMock {
		t.Error("Build() replaced a plugin already in the registry")
	}
	if _, ok := m.GetOutputPlugin("scss"); !ok {
		t.Error("custom plugin missing")
	}
	if _, ok := m.GetOutputPlugin("tailwind"); !ok {
		t.Error("built-in tailwind plugin missing")
	}
}

func TestBuilderWithEnvConfig(t *testing.T) {
	t.Setenv("OLTRE_DISABLED_PLUGINS", "output:swatch, tailwind")
	t.Setenv("OLTRE_ENABLED_PLUGINS", "")

	m := NewBuilder().
		WithConfig(Config{EnabledPlugins: []string{"css"}}).
		WithEnvConfig().
		Build()

	cfg := m.GetConfig()
	if !slices.Equal(cfg.DisabledPlugins, []string{"output:swatch", "tailwind"}) {
		t.Errorf("DisabledPlugins = %v", cfg.DisabledPlugins)
	}
	if !slices.Equal(cfg.EnabledPlugins, []string{"css"}) {
		t.Errorf("EnabledPlugins = %v, an empty variable must not override", cfg.EnabledPlugins)
	}
}

func TestIsEnabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		plugin string
		want   bool
	}{
		{name: "default enabled", config: Config{}, plugin: "css", want: true},
		{name: "disabled by name", config: Config{DisabledPlugins: []string{"css"}}, plugin: "css", want: false},
		{name: "disabled by full name", config: Config{DisabledPlugins: []string{"output:css"}}, plugin: "css", want: false},
		{name: "disable all", config: Config{DisabledPlugins: []string{All}}, plugin: "themejson", want: false},
		{name: "whitelist hit", config: Config{EnabledPlugins: []string{"themejson"}}, plugin: "themejson", want: true},
		{name: "whitelist miss", config: Config{EnabledPlugins: []string{"themejson"}}, plugin: "css", want: false},
		{name: "enable all", config: Config{EnabledPlugins: []string{All}}, plugin: "swatch", want: true},
		{name: "disabled beats enabled", config: Config{EnabledPlugins: []string{"css"}, DisabledPlugins: []string{"css"}}, plugin: "css", want: false},
		{name: "disable all beats enable all", config: Config{EnabledPlugins: []string{All}, DisabledPlugins: []string{All}}, plugin: "css", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBuilder().WithConfig(tt.config).Build()
			if got := m.isEnabled(tt.plugin); got != tt.want {
				t.Errorf("isEnabled(%q) = %v, want %v", tt.plugin, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	m := NewBuilder().WithConfig(Config{DisabledPlugins: []string{"swatch"}}).Build()

	plugins, err := m.Select([]string{"themejson", "css", "themejson"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(plugins) != 2 || plugins[0].Name() != "themejson" || plugins[1].Name() != "css" {
		t.Errorf("Select() = %v, want [themejson css] in request order", names(plugins))
	}

	if _, err := m.Select([]string{"swatch"}); err == nil {
		t.Error("Select() should reject a disabled plugin")
	}
	if _, err := m.Select([]string{"scss"}); err == nil {
		t.Error("Select() should reject an unknown plugin")
	}
}

func names(plugins []output.Plugin) []string {
	out := make([]string, len(plugins))
	for i, p := range plugins {
		out[i] = p.Name()
	}
	return out
}

func TestSetEnabledAndDisabled(t *testing.T) {
	m := NewBuilder().Build()

	m.SetDisabled("css")
	if m.IsOutputEnabled(&mockOutputPlugin{name: "css"}) {
		t.Error("css should be disabled")
	}

	m.SetEnabled("css")
	cfg := m.GetConfig()
	if len(cfg.DisabledPlugins) != 0 {
		t.Errorf("DisabledPlugins = %v, want empty", cfg.DisabledPlugins)
	}
	if !slices.Equal(cfg.EnabledPlugins, []string{"css"}) {
		t.Errorf("EnabledPlugins = %v, want [css]", cfg.EnabledPlugins)
	}
	if got := m.ListOutputPlugins(); !slices.Equal(got, []string{"css"}) {
		t.Errorf("ListOutputPlugins() = %v, want whitelist [css]", got)
	}

	m.SetEnabled("css")
	if len(m.GetConfig().EnabledPlugins) != 1 {
		t.Error("SetEnabled() added a duplicate entry")
	}

	m.UpdateConfig(Config{})
	if len(m.ListOutputPlugins()) != 4 {
		t.Error("UpdateConfig() did not reset the lists")
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.DisabledPlugins = []string{"swatch"}

	got := ConfigFrom(cfg)
	cfg.DisabledPlugins[0] = "css"
	if !slices.Equal(got.DisabledPlugins, []string{"swatch"}) {
		t.Errorf("ConfigFrom() shares the slice: %v", got.DisabledPlugins)
	}
}

func TestRegisterExternalPluginErrors(t *testing.T) {
	m := NewBuilder().Build()
	ctx := context.Background()

	if err := m.RegisterExternalPlugin(ctx, "css", "/bin/true"); err == nil {
		t.Error("RegisterExternalPlugin() should refuse to shadow a built-in")
	}
	if err := m.RegisterExternalPlugin(ctx, "scss", "/nonexistent/oltre-scss"); err == nil {
		t.Error("RegisterExternalPlugin() should fail for a missing executable")
	}

	dir := t.TempDir()
	plain := filepath.Join(dir, "not-executable")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := m.RegisterExternalPlugins(ctx, map[string]string{"a": plain, "b": "/nonexistent"})
	if err == nil {
		t.Error("RegisterExternalPlugins() should report failures")
	}
	if _, ok := m.GetOutputPlugin("a"); ok {
		t.Error("failed plugin was registered")
	}
}

func TestToTokenData(t *testing.T) {
	set := testSet(t)

	data := ToTokenData(set, map[string]any{"prefix": "wp"}, true)

	if data.Palette != "professional" || !data.DryRun || data.PluginArgs["prefix"] != "wp" {
		t.Errorf("header fields = %q %v %v", data.Palette, data.DryRun, data.PluginArgs)
	}
	if len(data.Colours) != set.Palette.Len() {
		t.Fatalf("got %d colours, want %d", len(data.Colours), set.Palette.Len())
	}
	primary, ok := data.Colour("primary")
	if !ok || primary.Hex != "#1e40af" || primary.HSL.H != 226 || primary.RGB.B != 175 {
		t.Errorf("primary = %+v", primary)
	}
	if data.Light["text"] != "neutral-900" || data.Dark["text"] != "neutral-100" {
		t.Errorf("aliases light=%v dark=%v", data.Light, data.Dark)
	}

	typo := data.Typography
	if typo.Preset != "modern" || typo.Ratio != 1.25 || len(typo.Steps) != 8 {
		t.Errorf("typography = %+v", typo)
	}
	if typo.Steps[2].Name != "base" || typo.Steps[2].Clamp != "clamp(0.875rem, 1.25vw, 1.125rem)" {
		t.Errorf("base step = %+v", typo.Steps[2])
	}
	if typo.Body.Stack != "Inter, sans-serif" {
		t.Errorf("body stack = %q", typo.Body.Stack)
	}
}

func TestToTokenDataWithoutDarkMode(t *testing.T) {
	cfg := config.Default()
	cfg.DarkMode = false
	set, err := tokens.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if data := ToTokenData(set, nil, false); data.Dark != nil {
		t.Errorf("Dark = %v, want nil without dark mode", data.Dark)
	}
}

func TestExternalOutputPluginInterface(t *testing.T) {
	var p output.Plugin = NewExternalOutputPlugin("scss", "", "/opt/oltre-scss", nil)

	if p.Name() != "scss" || p.Description() == "" || p.DefaultOutputDir() != "." {
		t.Errorf("external plugin metadata: %q %q %q", p.Name(), p.Description(), p.DefaultOutputDir())
	}
	if _, ok := p.(output.PostExecuteHook); !ok {
		t.Error("external plugin should implement PostExecuteHook")
	}
	if _, err := p.Generate(nil); err == nil {
		t.Error("Generate(nil) should fail")
	}
}
