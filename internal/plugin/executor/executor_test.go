package executor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/oltre/pkg/plugin"
)

const jsonInfo = `{"name":"scss","type":"output","version":"1.0.0","protocol_version":"0.1.0","plugin_protocol":"json-stdio"}`

// fakePlugin writes an executable placeholder so path validation passes; the
// mock runner never executes it.
func fakePlugin(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oltre-plugin-scss")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestExecutor(t *testing.T, runner *mockRunner) *Executor {
	t.Helper()
	e, err := New(context.Background(), fakePlugin(t), WithRunner(runner))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNew(t *testing.T) {
	e := newTestExecutor(t, &mockRunner{info: jsonInfo})

	if e.Protocol() != plugin.PluginTypeJSON {
		t.Errorf("Protocol() = %s, want %s", e.Protocol(), plugin.PluginTypeJSON)
	}
	if e.Info().Name != "scss" {
		t.Errorf("Info().Name = %q, want scss", e.Info().Name)
	}
	if !filepath.IsAbs(e.path) {
		t.Errorf("path %q is not absolute", e.path)
	}
}

func TestNewInvalidPath(t *testing.T) {
	if _, err := New(context.Background(), "/nonexistent/plugin", WithRunner(&mockRunner{info: jsonInfo})); err == nil {
		t.Error("New() should reject a missing plugin")
	}

	notExec := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(notExec, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(context.Background(), notExec, WithRunner(&mockRunner{info: jsonInfo})); err == nil {
		t.Error("New() should reject a non-executable plugin")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name         string
		info         string
		wantProtocol plugin.PluginType
		wantErr      bool
	}{
		{name: "json-stdio", info: jsonInfo, wantProtocol: plugin.PluginTypeJSON},
		{name: "go-plugin", info: `{"name":"a","plugin_protocol":"go-plugin","protocol_version":"0.1.0"}`, wantProtocol: plugin.PluginTypeGoPlugin},
		{name: "empty protocol defaults to json", info: `{"name":"a"}`, wantProtocol: plugin.PluginTypeJSON},
		{name: "unknown protocol", info: `{"name":"a","plugin_protocol":"grpc"}`, wantErr: true},
		{name: "input plugin", info: `{"name":"a","type":"input"}`, wantErr: true},
		{name: "incompatible major", info: `{"name":"a","protocol_version":"1.0.0"}`, wantErr: true},
		{name: "not json", info: `hello`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Detect(context.Background(), &mockRunner{info: tt.info}, "/plugin")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Detect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && plugin.PluginType(info.PluginProtocol) != tt.wantProtocol {
				t.Errorf("Detect() protocol = %s, want %s", info.PluginProtocol, tt.wantProtocol)
			}
		})
	}
}

func TestExecuteOutputJSON(t *testing.T) {
	runner := &mockRunner{
		info: jsonInfo,
		run: func(_ []string, stdin []byte) ([]byte, []byte, error) {
			var tokens plugin.TokenData
			if err := json.Unmarshal(stdin, &tokens); err != nil {
				return nil, []byte("bad input"), err
			}
			out, _ := json.Marshal(map[string][]byte{
				"tokens.scss": []byte("$palette: " + tokens.Palette + ";"),
			})
			return out, nil, nil
		},
	}
	e := newTestExecutor(t, runner)

	files, err := e.ExecuteOutput(context.Background(), plugin.TokenData{Palette: "creative"})
	if err != nil {
		t.Fatalf("ExecuteOutput() error = %v", err)
	}
	if got := string(files["tokens.scss"]); got != "$palette: creative;" {
		t.Errorf("tokens.scss = %q", got)
	}
}

func TestExecuteOutputJSONRawStdout(t *testing.T) {
	runner := &mockRunner{
		info: jsonInfo,
		run: func([]string, []byte) ([]byte, []byte, error) {
			return []byte("plain text output"), nil, nil
		},
	}
	e := newTestExecutor(t, runner)

	files, err := e.ExecuteOutput(context.Background(), plugin.TokenData{})
	if err != nil {
		t.Fatalf("ExecuteOutput() error = %v", err)
	}
	if string(files[FallbackFileName]) != "plain text output" {
		t.Errorf("files = %v, want raw stdout under %s", files, FallbackFileName)
	}
}

func TestExecuteOutputJSONError(t *testing.T) {
	runner := &mockRunner{
		info: jsonInfo,
		run: func([]string, []byte) ([]byte, []byte, error) {
			return nil, []byte("template missing"), errors.New("exit status 2")
		},
	}
	e := newTestExecutor(t, runner)

	_, err := e.ExecuteOutput(context.Background(), plugin.TokenData{})
	if err == nil || !strings.Contains(err.Error(), "template missing") {
		t.Errorf("ExecuteOutput() error = %v, want stderr included", err)
	}
}

func TestPostExecuteJSON(t *testing.T) {
	runner := &mockRunner{info: jsonInfo}
	e := newTestExecutor(t, runner)

	if err := e.PostExecute(context.Background(), []string{"/tmp/tokens.scss"}); err != nil {
		t.Fatalf("PostExecute() error = %v", err)
	}

	last := runner.calls[len(runner.calls)-1]
	if len(last.args) != 1 || last.args[0] != "--post-execute" {
		t.Errorf("args = %v, want [--post-execute]", last.args)
	}
	if !strings.Contains(string(last.stdin), `"written_files":["/tmp/tokens.scss"]`) {
		t.Errorf("stdin = %s", last.stdin)
	}
}

func TestPostExecuteJSONError(t *testing.T) {
	runner := &mockRunner{
		info: jsonInfo,
		run: func([]string, []byte) ([]byte, []byte, error) {
			return nil, []byte("reload failed\n"), errors.New("exit status 1")
		},
	}
	e := newTestExecutor(t, runner)

	err := e.PostExecute(context.Background(), nil)
	if err == nil || err.Error() != "post-execute failed: reload failed" {
		t.Errorf("PostExecute() error = %v", err)
	}
}

func TestUnsupportedProtocol(t *testing.T) {
	e := &Executor{protocolType: "carrier-pigeon"}

	if _, err := e.ExecuteOutput(context.Background(), plugin.TokenData{}); err == nil {
		t.Error("ExecuteOutput() should fail for an unknown protocol")
	}
	if err := e.PostExecute(context.Background(), nil); err == nil {
		t.Error("PostExecute() should fail for an unknown protocol")
	}
}

func TestCancelledContext(t *testing.T) {
	runner := &mockRunner{info: jsonInfo}
	e := newTestExecutor(t, runner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ExecuteOutput(ctx, plugin.TokenData{}); err == nil {
		t.Error("ExecuteOutput() should fail with a cancelled context")
	}
}

func TestCloseIdempotent(t *testing.T) {
	e := newTestExecutor(t, &mockRunner{info: jsonInfo})
	e.Close()
	e.Close()
}
