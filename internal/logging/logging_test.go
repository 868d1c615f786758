package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want hclog.Level
	}{
		{name: "default", opts: Options{}, want: hclog.Info},
		{name: "named", opts: Options{Level: "warn"}, want: hclog.Warn},
		{name: "unknown falls back", opts: Options{Level: "loud"}, want: hclog.Info},
		{name: "verbose", opts: Options{Level: "warn", Verbose: true}, want: hclog.Debug},
		{name: "quiet wins", opts: Options{Verbose: true, Quiet: true}, want: hclog.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.ResolveLevel(); got != tt.want {
				t.Errorf("ResolveLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Level: "info"})
	server := Component(logger, "server")

	server.Debug("hidden")
	server.Info("listening", "addr", "127.0.0.1:8787")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "oltre.server") || !strings.Contains(out, "addr=127.0.0.1:8787") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Component(nil, "plugin")
	if logger.IsError() {
		t.Error("discard logger should not be enabled for any level")
	}
	logger.Error("nothing happens")
}
