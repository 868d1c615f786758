package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/bundle"
	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/plugin/manager"
	"github.com/jmylchreest/oltre/internal/plugin/output"
	"github.com/jmylchreest/oltre/internal/plugin/output/common"
	"github.com/jmylchreest/oltre/internal/security"
	"github.com/jmylchreest/oltre/internal/tokens"
)

// GeneratedFile records one file produced by an output plugin.
type GeneratedFile struct {
	Plugin string `json:"plugin"`
	Path   string `json:"path"`
	Bytes  int    `json:"bytes"`
}

type generateOptions struct {
	outputs    []string
	dryRun     bool
	bundlePath string
	preview    bool
	pluginArgs map[string]string
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate token files from the configured palette and typography",
		Args:  cobra.NoArgs,
	}
	ov := bindOverrides(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runGenerate(cmd, opts, ov)
	}

	cmd.Flags().StringSliceVarP(&opts.outputs, "outputs", "o", nil, "output plugins (comma-separated or 'all'; default: configured outputs)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without writing")
	cmd.Flags().StringVar(&opts.bundlePath, "bundle", "", "write every generated file into a "+bundle.Extension+" archive instead")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print the palette and typography before generating")
	cmd.Flags().StringToStringVar(&opts.pluginArgs, "plugin-args", nil, "JSON arguments for external plugins (name='{\"key\":\"value\"}')")

	for _, p := range a.plugins.Registry().All() {
		p.RegisterFlags(cmd)
	}
	cmd.Long = a.generateHelp()

	return cmd
}

// generateHelp lists the registered output plugins.
func (a *app) generateHelp() string {
	help := `Generate token files from the configured palette and typography.

Settings come from the config file, OLTRE_* environment variables and the
flags below, in increasing order of precedence.

Output plugins:
`
	names := a.plugins.Registry().List()
	sort.Strings(names)
	for _, name := range names {
		p, _ := a.plugins.GetOutputPlugin(name)
		help += fmt.Sprintf("  %-10s - %s\n", name, p.Description())
	}
	help += `  all        - every enabled plugin

Examples:
  # Configured outputs
  oltre generate

  # CSS and theme.json for a creative palette, written into a theme
  oltre generate -p creative -o css,themejson -d wp-content/themes/mine

  # Palette derived from a base colour, previewed but not written
  oltre generate -b '#0f766e' --harmony triadic --preview --dry-run

  # Everything, archived
  oltre generate -o all --bundle tokens.tar.xz`
	return help
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions, ov *overrides) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if err := ov.apply(cfg); err != nil {
		return err
	}
	a.registerExternalPlugins(ctx, cfg)

	set, err := tokens.Build(cfg)
	if err != nil {
		return err
	}

	names := cfg.Outputs
	if cmd.Flags().Changed("outputs") {
		names = opts.outputs
	}
	if slices.Contains(names, manager.All) {
		names = a.plugins.ListOutputPlugins()
	}
	plugins, err := a.plugins.Select(names)
	if err != nil {
		return err
	}
	if len(plugins) == 0 {
		return errors.New("no output plugins selected")
	}
	if err := configureExternal(plugins, opts); err != nil {
		return err
	}

	if opts.preview && !a.jsonOutput {
		printPreview(out, set)
	}

	var (
		results   []GeneratedFile
		archive   = make(map[string][]byte)
		succeeded int
	)
	for _, p := range plugins {
		log := a.logger.With("plugin", p.Name())

		if err := p.Validate(); err != nil {
			log.Warn("skipping plugin", "error", err)
			continue
		}
		files, err := p.Generate(set)
		if err != nil {
			log.Error("plugin failed", "error", err)
			continue
		}

		dir := outputDir(cfg, p)
		written, err := a.emit(out, p.Name(), dir, files, opts, archive, &results)
		if err != nil {
			return err
		}

		if hook, ok := p.(output.PostExecuteHook); ok && len(written) > 0 {
			if err := hook.PostExecute(ctx, written); err != nil {
				log.Warn("post-execute hook failed", "error", err)
			}
		}
		succeeded++
	}

	if succeeded == 0 {
		return errors.New("no output plugins succeeded")
	}

	if opts.bundlePath != "" {
		if err := a.writeBundle(out, opts, archive); err != nil {
			return err
		}
	}

	if a.jsonOutput {
		return printJSON(out, results)
	}
	if !opts.dryRun {
		a.status(out, "\n✓ Done! Generated %d file(s) from %d output plugin(s)\n", len(results), succeeded)
	}
	return nil
}

// emit writes, archives or reports one plugin's files and returns the paths
// actually written to disk.
func (a *app) emit(out io.Writer, plugin, dir string, files map[string][]byte, opts *generateOptions, archive map[string][]byte, results *[]GeneratedFile) ([]string, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		if err := security.ValidateFilePath(name, dir); err != nil {
			return nil, fmt.Errorf("%s: %w", plugin, err)
		}
		content := files[name]
		path := filepath.Join(dir, name)

		switch {
		case opts.bundlePath != "":
			key := bundleKey(dir, name)
			if _, dup := archive[key]; dup {
				return nil, fmt.Errorf("%s: %s is already in the bundle", plugin, key)
			}
			archive[key] = content
		case opts.dryRun:
			a.status(out, "  Would write: %s (%d bytes)\n", path, len(content))
		default:
			if err := writeFile(path, content); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
			a.status(out, "  ├─ %s (%d bytes)\n", path, len(content))
			written = append(written, path)
		}
		*results = append(*results, GeneratedFile{Plugin: plugin, Path: path, Bytes: len(content)})
	}
	return written, nil
}

func (a *app) writeBundle(out io.Writer, opts *generateOptions, archive map[string][]byte) error {
	data, err := bundle.Bytes(archive, bundleTime())
	if err != nil {
		return err
	}
	if opts.dryRun {
		a.status(out, "  Would write: %s (%d bytes, %d files)\n", opts.bundlePath, len(data), len(archive))
		return nil
	}
	if err := writeFile(opts.bundlePath, data); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	a.status(out, "  └─ %s (%d bytes, %d files)\n", opts.bundlePath, len(data), len(archive))
	return nil
}

// outputDir resolves where a plugin's files go. Relative plugin directories
// are placed under the configured output directory.
func outputDir(cfg *config.Config, p output.Plugin) string {
	dir := p.DefaultOutputDir()
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(cfg.OutputDir, dir)
}

// bundleKey names an archive entry after the plugin's relative directory.
func bundleKey(dir, name string) string {
	if filepath.IsAbs(dir) || !filepath.IsLocal(dir) {
		return filepath.ToSlash(name)
	}
	return filepath.ToSlash(filepath.Join(dir, name))
}

// bundleTime honours SOURCE_DATE_EPOCH for reproducible archives.
func bundleTime() time.Time {
	if v := os.Getenv("SOURCE_DATE_EPOCH"); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(secs, 0)
		}
	}
	return time.Now()
}

// configureExternal passes dry-run and --plugin-args through to external
// plugins.
func configureExternal(plugins []output.Plugin, opts *generateOptions) error {
	for _, p := range plugins {
		ext, ok := p.(*manager.ExternalOutputPlugin)
		if !ok {
			continue
		}
		ext.SetDryRun(opts.dryRun)

		raw, ok := opts.pluginArgs[p.Name()]
		if !ok {
			continue
		}
		var args map[string]any
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return fmt.Errorf("invalid --plugin-args for %s: %w", p.Name(), err)
		}
		ext.SetArgs(args)
	}
	return nil
}

// registerExternalPlugins registers the config's external plugins. Broken
// plugins are logged and skipped.
func (a *app) registerExternalPlugins(ctx context.Context, cfg *config.Config) {
	if len(cfg.Plugins) == 0 {
		return
	}
	if err := a.plugins.RegisterExternalPlugins(ctx, cfg.Plugins); err != nil {
		a.logger.Debug("some external plugins were not registered", "error", err)
	}
}

// writeFile writes content to path, creating parent directories.
func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 - generated assets are world readable
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// printPreview shows the token set's colours and typography.
func printPreview(out io.Writer, set *tokens.Set) {
	sw := newSwatcher(out)

	fmt.Fprintf(out, "Palette: %s\n\n", set.Name())
	t := NewTable("", "Name", "Hex", "HSL", "Label")
	for _, c := range set.Colours() {
		_, grade := common.ContrastLabel(c.RGB)
		t.AddRow(sw.chip(c.RGB), c.Name, c.Hex, c.HSL.String(), sw.grade(grade))
	}
	_ = t.Fprint(out)

	p := set.Typography
	fmt.Fprintf(out, "\nTypography: %s (%s / %s, ratio %g, line height %g)\n\n",
		p.Key, p.Heading.Family, p.Body.Family, set.Scale.Ratio, p.LineHeight)
}
