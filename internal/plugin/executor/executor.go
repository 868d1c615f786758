// Package executor runs external output plugins over either go-plugin RPC or
// JSON-stdio.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/oltre/internal/security"
	"github.com/jmylchreest/oltre/pkg/plugin"
)

const (
	detectTimeout      = 5 * time.Second
	postExecuteTimeout = 10 * time.Second

	// FallbackFileName names raw stdout from a JSON-stdio plugin that did not
	// answer with a file map.
	FallbackFileName = "output.txt"
)

// Executor provides a unified interface for executing plugins.
type Executor struct {
	path         string
	info         plugin.PluginInfo
	protocolType plugin.PluginType
	runner       ProcessRunner
	logger       hclog.Logger
	client       *goplugin.Client
	rpcClient    *plugin.OutputPluginRPCClient
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for the executor and the go-plugin client.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithRunner replaces the process runner used for JSON-stdio calls.
func WithRunner(runner ProcessRunner) Option {
	return func(e *Executor) {
		e.runner = runner
	}
}

// New validates the plugin path and detects the plugin's protocol.
func New(ctx context.Context, pluginPath string, opts ...Option) (*Executor, error) {
	abs, err := security.ValidatePluginPath(pluginPath)
	if err != nil {
		return nil, err
	}

	e := &Executor{
		path:   abs,
		runner: NewRealProcessRunner(),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	info, err := Detect(ctx, e.runner, abs)
	if err != nil {
		return nil, err
	}
	e.info = info
	e.protocolType = plugin.PluginType(info.PluginProtocol)

	e.logger.Debug("plugin detected", "path", abs, "name", info.Name, "protocol", e.protocolType)
	return e, nil
}

// Detect queries a plugin's --plugin-info and checks protocol compatibility.
// An empty plugin_protocol means json-stdio.
func Detect(ctx context.Context, runner ProcessRunner, pluginPath string) (plugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	stdout, _, err := runner.Run(ctx, pluginPath, []string{"--plugin-info"}, nil)
	if err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info plugin.PluginInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	switch plugin.PluginType(info.PluginProtocol) {
	case plugin.PluginTypeGoPlugin, plugin.PluginTypeJSON:
	case "":
		info.PluginProtocol = string(plugin.PluginTypeJSON)
	default:
		return plugin.PluginInfo{}, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	if info.Type != "" && info.Type != "output" {
		return plugin.PluginInfo{}, fmt.Errorf("plugin %q has type %q, only output plugins are supported", info.Name, info.Type)
	}

	if info.ProtocolVersion != "" {
		if ok, err := plugin.IsCompatible(info.ProtocolVersion); !ok {
			return plugin.PluginInfo{}, fmt.Errorf("plugin %q protocol version %s is incompatible with oltre %s: %w",
				info.Name, info.ProtocolVersion, plugin.ProtocolVersion, err)
		}
	}

	return info, nil
}

// Info returns the metadata reported by the plugin.
func (e *Executor) Info() plugin.PluginInfo {
	return e.info
}

// Path returns the validated absolute plugin path.
func (e *Executor) Path() string {
	return e.path
}

// Protocol returns the detected protocol.
func (e *Executor) Protocol() plugin.PluginType {
	return e.protocolType
}

// ExecuteOutput runs the plugin and returns the generated files.
func (e *Executor) ExecuteOutput(ctx context.Context, tokens plugin.TokenData) (map[string][]byte, error) {
	switch e.protocolType {
	case plugin.PluginTypeGoPlugin:
		client, err := e.outputRPCClient()
		if err != nil {
			return nil, err
		}
		return client.Generate(ctx, tokens)
	case plugin.PluginTypeJSON:
		return e.executeOutputJSON(ctx, tokens)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// PostExecute runs the plugin's post-execution hook.
func (e *Executor) PostExecute(ctx context.Context, writtenFiles []string) error {
	switch e.protocolType {
	case plugin.PluginTypeGoPlugin:
		client, err := e.outputRPCClient()
		if err != nil {
			return err
		}
		return client.PostExecute(ctx, writtenFiles)
	case plugin.PluginTypeJSON:
		return e.postExecuteJSON(ctx, writtenFiles)
	default:
		return fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// Close kills the plugin process if one is running.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

func (e *Executor) outputRPCClient() (*plugin.OutputPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.PluginMap(nil),
		Cmd:              exec.Command(e.path), // #nosec G204 -- path validated in New
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger.Named("plugin"),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.DispenseName)
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.OutputPluginRPCClient)
	if !ok {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpcClient = client
	return client, nil
}

func (e *Executor) executeOutputJSON(ctx context.Context, tokens plugin.TokenData) (map[string][]byte, error) {
	payload, err := json.Marshal(tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tokens: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w\nStderr: %s", err, stderr)
	}

	files := make(map[string][]byte)
	if len(bytes.TrimSpace(stdout)) == 0 {
		return files, nil
	}
	if err := json.Unmarshal(stdout, &files); err != nil {
		e.logger.Debug("plugin output is not a file map, keeping raw stdout", "file", FallbackFileName)
		return map[string][]byte{FallbackFileName: stdout}, nil
	}
	return files, nil
}

func (e *Executor) postExecuteJSON(ctx context.Context, writtenFiles []string) error {
	ctx, cancel := context.WithTimeout(ctx, postExecuteTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"written_files": writtenFiles,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal files: %w", err)
	}

	_, stderr, err := e.runner.Run(ctx, e.path, []string{"--post-execute"}, bytes.NewReader(payload))
	if err != nil {
		msg := string(bytes.TrimSpace(stderr))
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("post-execute failed: %s", msg)
	}
	return nil
}
