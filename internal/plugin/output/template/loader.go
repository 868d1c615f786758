// Package template loads plugin templates, preferring user overrides under
// ~/.config/oltre/templates/{plugin}/ over the embedded defaults.
package template

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Loader handles loading templates with support for custom overrides.
type Loader struct {
	pluginName string
	embedFS    embed.FS
	customBase string
	logger     hclog.Logger
}

// New creates a new template loader for the specified plugin.
func New(pluginName string, embedFS embed.FS) *Loader {
	base := ""
	if dir, err := os.UserConfigDir(); err == nil {
		base = filepath.Join(dir, "oltre", "templates")
	}

	return &Loader{
		pluginName: pluginName,
		embedFS:    embedFS,
		customBase: base,
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the base directory searched for overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads a template file, checking for custom overrides first.
// Returns the template content and whether it was loaded from a custom override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if l.customBase != "" {
		customPath := l.CustomPath(filename)
		if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 - user template directory
			l.logger.Debug("using custom template", "plugin", l.pluginName, "path", customPath)
			return content, true, nil
		}
	}

	l.logger.Trace("using embedded template", "plugin", l.pluginName, "file", filename)
	content, err = l.embedFS.ReadFile(filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}

	return content, false, nil
}

// CustomPath returns the path where a custom template would be located.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.pluginName, filename)
}

// ListEmbeddedTemplates returns every embedded template file, sorted.
func (l *Loader) ListEmbeddedTemplates() ([]string, error) {
	var templates []string

	err := fs.WalkDir(l.embedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			templates = append(templates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}

	sort.Strings(templates)
	return templates, nil
}

// DumpTemplate writes an embedded template to the custom templates directory.
// If force is false, it will not overwrite existing custom templates.
func (l *Loader) DumpTemplate(filename string, force bool) error {
	content, err := l.embedFS.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("custom template already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", filepath.Dir(outputPath), err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil { // #nosec G306 - templates are not secret
		return fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	return nil
}

// DumpAllTemplates writes every embedded template. Existing files are skipped
// unless force is set; the skipped paths are reported in the returned error.
func (l *Loader) DumpAllTemplates(force bool) ([]string, error) {
	templates, err := l.ListEmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	var dumped, skipped []string
	for _, tmpl := range templates {
		if err := l.DumpTemplate(tmpl, force); err != nil {
			if !force && strings.Contains(err.Error(), "already exists") {
				skipped = append(skipped, err.Error())
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, l.CustomPath(tmpl))
	}

	if len(skipped) > 0 {
		return dumped, fmt.Errorf("%s", strings.Join(skipped, "; "))
	}
	return dumped, nil
}
