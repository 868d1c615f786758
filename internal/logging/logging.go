// Package logging builds the hclog loggers shared by the CLI, the preview
// server and plugin clients.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Root is the name of the top-level logger.
const Root = "oltre"

// Options selects the level and sink for New.
type Options struct {
	// Level is an hclog level name; empty means info.
	Level   string
	Verbose bool
	Quiet   bool
	Output  io.Writer
	JSON    bool
}

// ResolveLevel applies the precedence quiet > verbose > named level.
func (o Options) ResolveLevel() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Error
	case o.Verbose:
		return hclog.Debug
	}
	if o.Level == "" {
		return hclog.Info
	}
	if lvl := hclog.LevelFromString(strings.TrimSpace(o.Level)); lvl != hclog.NoLevel {
		return lvl
	}
	return hclog.Info
}

// New returns the root logger. Output defaults to stderr so command output on
// stdout stays machine readable.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       Root,
		Output:     out,
		Level:      opts.ResolveLevel(),
		JSONFormat: opts.JSON,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   Root,
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// Component derives a named sub-logger ("oltre.server", "oltre.plugin").
func Component(parent hclog.Logger, name string) hclog.Logger {
	if parent == nil {
		parent = Discard()
	}
	return parent.Named(name)
}
