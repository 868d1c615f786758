// Package manager provides plugin management with configuration support.
package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/plugin/executor"
	"github.com/jmylchreest/oltre/internal/plugin/output"
	"github.com/jmylchreest/oltre/internal/plugin/output/css"
	"github.com/jmylchreest/oltre/internal/plugin/output/swatch"
	"github.com/jmylchreest/oltre/internal/plugin/output/tailwind"
	"github.com/jmylchreest/oltre/internal/plugin/output/themejson"
)

// All matches every plugin in an enabled or disabled list.
const All = "all"

// Config holds plugin enable/disable configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable. Disabling wins
	// over enabling.
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string
}

// ConfigFrom extracts the plugin lists from the application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		DisabledPlugins: slices.Clone(cfg.DisabledPlugins),
		EnabledPlugins:  slices.Clone(cfg.EnabledPlugins),
	}
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger
	useEnv   bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		registry: output.NewRegistry(),
		logger:   hclog.NewNullLogger(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithEnvConfig loads the lists from OLTRE_DISABLED_PLUGINS and
// OLTRE_ENABLED_PLUGINS, overriding WithConfig for any variable that is set.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithRegistry allows providing a custom plugin registry (useful for testing).
func (b *Builder) WithRegistry(reg *output.Registry) *Builder {
	b.registry = reg
	return b
}

// WithLogger sets the logger handed to the manager and external plugins.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build constructs the Manager and registers the built-in plugins.
func (b *Builder) Build() *Manager {
	cfg := b.config

	if b.useEnv {
		if disabled := os.Getenv("OLTRE_DISABLED_PLUGINS"); disabled != "" {
			cfg.DisabledPlugins = config.ParseList(disabled)
		}
		if enabled := os.Getenv("OLTRE_ENABLED_PLUGINS"); enabled != "" {
			cfg.EnabledPlugins = config.ParseList(enabled)
		}
	}

	m := &Manager{
		config:   cfg,
		registry: b.registry,
		logger:   b.logger,
	}
	m.registerBuiltinPlugins()

	return m
}

// Manager manages plugin enable/disable state and owns the plugin registry.
type Manager struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger
}

// BuiltinPlugins returns fresh instances of every built-in output plugin.
func BuiltinPlugins() []output.Plugin {
	return []output.Plugin{
		css.New(),
		themejson.New(),
		tailwind.New(),
		swatch.New(),
	}
}

// loggerSetter is implemented by plugins that log while generating.
type loggerSetter interface {
	SetLogger(hclog.Logger)
}

func (m *Manager) registerBuiltinPlugins() {
	for _, p := range BuiltinPlugins() {
		if _, exists := m.registry.Get(p.Name()); exists {
			continue
		}
		if ls, ok := p.(loggerSetter); ok {
			ls.SetLogger(m.logger.Named(p.Name()))
		}
		m.registry.Register(p)
	}
}

// Registry returns the output plugin registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// GetOutputPlugin retrieves an output plugin by name.
func (m *Manager) GetOutputPlugin(name string) (output.Plugin, bool) {
	return m.registry.Get(name)
}

// IsOutputEnabled checks if an output plugin is enabled.
func (m *Manager) IsOutputEnabled(plugin output.Plugin) bool {
	return m.isEnabled(plugin.Name())
}

// isEnabled determines if a plugin is enabled based on configuration.
// Entries may be bare names or "output:<name>".
func (m *Manager) isEnabled(name string) bool {
	if slices.Contains(m.config.DisabledPlugins, All) || matches(m.config.DisabledPlugins, name) {
		return false
	}

	if len(m.config.EnabledPlugins) > 0 {
		return slices.Contains(m.config.EnabledPlugins, All) || matches(m.config.EnabledPlugins, name)
	}

	return true
}

func matches(list []string, name string) bool {
	return slices.Contains(list, name) || slices.Contains(list, "output:"+name)
}

// FilterOutputPlugins returns only enabled output plugins.
func (m *Manager) FilterOutputPlugins() map[string]output.Plugin {
	enabled := make(map[string]output.Plugin)
	for name, plugin := range m.registry.All() {
		if m.IsOutputEnabled(plugin) {
			enabled[name] = plugin
		}
	}
	return enabled
}

// ListOutputPlugins returns names of enabled output plugins in alphabetical order.
func (m *Manager) ListOutputPlugins() []string {
	names := []string{}
	for name := range m.FilterOutputPlugins() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves the requested output names to enabled plugins, in request
// order. Unknown and disabled names are errors.
func (m *Manager) Select(names []string) ([]output.Plugin, error) {
	selected := make([]output.Plugin, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		p, ok := m.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin %q (available: %v)", name, m.registry.List())
		}
		if !m.IsOutputEnabled(p) {
			return nil, fmt.Errorf("output plugin %q is disabled", name)
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// UpdateConfig updates the manager's configuration without recreating plugin instances.
// This preserves flag bindings and other plugin state.
func (m *Manager) UpdateConfig(cfg Config) {
	m.config = cfg
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// SetDisabled adds a plugin to the disabled list.
func (m *Manager) SetDisabled(name string) {
	m.config.EnabledPlugins = remove(m.config.EnabledPlugins, name)
	if !matches(m.config.DisabledPlugins, name) {
		m.config.DisabledPlugins = append(m.config.DisabledPlugins, name)
	}
}

// SetEnabled adds a plugin to the enabled list (whitelist mode).
func (m *Manager) SetEnabled(name string) {
	m.config.DisabledPlugins = remove(m.config.DisabledPlugins, name)
	if !matches(m.config.EnabledPlugins, name) {
		m.config.EnabledPlugins = append(m.config.EnabledPlugins, name)
	}
}

func remove(list []string, name string) []string {
	return slices.DeleteFunc(slices.Clone(list), func(s string) bool {
		return s == name || s == "output:"+name
	})
}

// RegisterExternalPlugin probes the executable at path and registers it as
// an output plugin. Built-in plugins cannot be shadowed.
func (m *Manager) RegisterExternalPlugin(ctx context.Context, name, path string) error {
	for _, p := range BuiltinPlugins() {
		if p.Name() == name {
			return fmt.Errorf("external plugin %q conflicts with a built-in plugin", name)
		}
	}

	exec, err := executor.New(ctx, path, executor.WithLogger(m.logger))
	if err != nil {
		return fmt.Errorf("failed to load plugin %q: %w", name, err)
	}
	defer exec.Close()

	info := exec.Info()
	m.registry.Register(NewExternalOutputPlugin(name, info.Description, exec.Path(), m.logger))
	m.logger.Debug("registered external plugin", "name", name, "path", exec.Path(), "version", info.Version)
	return nil
}

// RegisterExternalPlugins registers every configured plugin, collecting failures.
func (m *Manager) RegisterExternalPlugins(ctx context.Context, plugins map[string]string) error {
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := m.RegisterExternalPlugin(ctx, name, plugins[name]); err != nil {
			m.logger.Warn("skipping external plugin", "name", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
