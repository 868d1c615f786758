// Package output provides the interface and base types for output plugins.
package output

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/tokens"
)

// Plugin represents an output plugin that renders files from a token set.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "themejson").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given token set.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(set *tokens.Set) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin,
	// relative to the configured output directory.
	DefaultOutputDir() string
}

// PostExecuteHook is implemented by plugins that act on their files once
// they have been written (reloading a service, copying into a theme).
type PostExecuteHook interface {
	PostExecute(ctx context.Context, writtenFiles []string) error
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin of the same name.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in alphabetical order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered plugins (including disabled ones).
func (r *Registry) All() map[string]Plugin {
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}
