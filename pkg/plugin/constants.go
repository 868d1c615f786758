// Package plugin provides the public API for oltre output plugins.
// External plugins should import this package instead of internal packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this oltre version can work with.
	MinCompatibleVersion = "0.1.0"
)

// Handshake is the handshake configuration for go-plugin protocol.
// The go-plugin version is the major component of ProtocolVersion; the full
// semantic check happens through --plugin-info and IsCompatible.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(MustParseVersion(ProtocolVersion).Major),
	MagicCookieKey:   "OLTRE_PLUGIN",
	MagicCookieValue: "oltre_design_tokens",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// DispenseName is the name the output plugin is served and dispensed under.
const DispenseName = "output"

// PluginMap is the go-plugin plugin set for output plugins.
func PluginMap(impl OutputPlugin) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		DispenseName: &OutputPluginRPC{Impl: impl},
	}
}
