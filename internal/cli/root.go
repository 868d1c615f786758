// Package cli provides the command-line interface for oltre.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/logging"
	"github.com/jmylchreest/oltre/internal/plugin/manager"
	"github.com/jmylchreest/oltre/internal/version"
)

// app carries the global flags and shared services of one command tree.
type app struct {
	configPath string
	verbose    bool
	quiet      bool
	jsonOutput bool

	logger  hclog.Logger
	plugins *manager.Manager
}

// NewRootCmd builds a fresh command tree. Plugin flags are bound to the
// plugin instances owned by this tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		logger: logging.New(logging.Options{Level: os.Getenv("OLTRE_LOG_LEVEL")}),
	}
	a.plugins = manager.NewBuilder().
		WithEnvConfig().
		WithLogger(logging.Component(a.logger, "plugin")).
		Build()

	rootCmd := &cobra.Command{
		Use:   "oltre",
		Short: "Design tokens from colour harmonies and fluid type scales",
		Long: `oltre turns a base colour, a harmony rule, a palette preset and a type-scale
ratio into design tokens: colour palettes, WCAG contrast reports and fluid
typography scales, rendered as CSS custom properties, WordPress theme.json,
Tailwind config, PNG swatch sheets or any external output plugin.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger.SetLevel(logging.Options{
				Level:   os.Getenv("OLTRE_LOG_LEVEL"),
				Verbose: a.verbose,
				Quiet:   a.quiet,
			}.ResolveLevel())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: ./oltre.yaml or $XDG_CONFIG_HOME/oltre/oltre.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print machine-readable JSON")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newConvertCmd(a),
		newContrastCmd(a),
		newPaletteCmd(a),
		newRampCmd(a),
		newScaleCmd(a),
		newPresetsCmd(a),
		newFontsCmd(a),
		newGenerateCmd(a),
		newAuditCmd(a),
		newServeCmd(a),
		newPluginsCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// loadConfig reads the config file and environment, then applies the
// log level the config asks for unless a flag already chose one.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if !a.verbose && !a.quiet && cfg.LogLevel != "" {
		a.logger.SetLevel(logging.Options{Level: cfg.LogLevel}.ResolveLevel())
	}
	if cfg.Source != "" {
		a.logger.Debug("loaded config", "path", cfg.Source)
	}

	a.plugins.UpdateConfig(manager.ConfigFrom(cfg))
	return cfg, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

// status prints progress output unless --quiet is set.
func (a *app) status(w io.Writer, format string, args ...any) {
	if a.quiet || a.jsonOutput {
		return
	}
	fmt.Fprintf(w, format, args...)
}
