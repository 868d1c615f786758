package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/logging"
	"github.com/jmylchreest/oltre/internal/plugin/executor"
	"github.com/jmylchreest/oltre/internal/plugin/manager"
)

// PluginStatus is one row of the plugin list.
type PluginStatus struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"` // "builtin" or "external"
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"`
}

func newPluginsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List and inspect output plugins",
		Long: `List the built-in output plugins and the external plugins named in the
config file's "plugins" section.

Plugins can be switched off with disabled_plugins / enabled_plugins in the
config file or the OLTRE_DISABLED_PLUGINS / OLTRE_ENABLED_PLUGINS environment
variables. Disabled entries win; a non-empty enabled list acts as a whitelist.`,
		Args: cobra.NoArgs,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List output plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listPlugins(cmd)
		},
	}
	cmd.RunE = list.RunE

	inspect := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Query an external plugin binary for its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			exec, err := executor.New(ctx, args[0], executor.WithLogger(logging.Component(a.logger, "plugin")))
			if err != nil {
				return err
			}
			defer exec.Close()

			info := exec.Info()
			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return printJSON(out, info)
			}
			t := NewTable("Field", "Value")
			t.AddRow("name", info.Name)
			t.AddRow("version", info.Version)
			t.AddRow("protocol", info.PluginProtocol)
			t.AddRow("protocol version", info.ProtocolVersion)
			t.AddRow("description", info.Description)
			t.AddRow("path", exec.Path())
			t.SetColumnMaxWidth(1, 60)
			return t.Fprint(out)
		},
	}

	cmd.AddCommand(list, inspect)
	return cmd
}

func (a *app) listPlugins(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.registerExternalPlugins(ctx, cfg)

	var rows []PluginStatus
	for name, p := range a.plugins.Registry().All() {
		row := PluginStatus{
			Name:        name,
			Kind:        "builtin",
			Enabled:     a.plugins.IsOutputEnabled(p),
			Description: p.Description(),
		}
		if ext, ok := p.(*manager.ExternalOutputPlugin); ok {
			row.Kind = "external"
			row.Path = ext.Path()
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	out := cmd.OutOrStdout()
	if a.jsonOutput {
		return printJSON(out, rows)
	}

	t := NewTable("Name", "Kind", "Status", "Description")
	for _, r := range rows {
		status := "enabled"
		if !r.Enabled {
			status = "disabled"
		}
		t.AddRow(r.Name, r.Kind, status, r.Description)
	}
	t.SetColumnMaxWidth(3, 60)
	return t.Fprint(out)
}
