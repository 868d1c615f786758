package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as an oltre output plugin.
//
// With --plugin-info it prints metadata and returns. Otherwise, when started
// by the oltre host over go-plugin it serves RPC; started by hand it falls back
// to the JSON-stdio protocol, reading TokenData on stdin and writing the
// generated files as a JSON object on stdout.
func Serve(impl OutputPlugin) {
	if err := run(impl, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(impl OutputPlugin, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "--plugin-info" {
		return json.NewEncoder(stdout).Encode(Metadata(impl, PluginTypeGoPlugin))
	}

	if os.Getenv(Handshake.MagicCookieKey) == Handshake.MagicCookieValue {
		plugin.Serve(&plugin.ServeConfig{
			HandshakeConfig: Handshake,
			Plugins:         PluginMap(impl),
			Logger: hclog.New(&hclog.LoggerOptions{
				Name:       impl.GetMetadata().Name,
				Output:     os.Stderr,
				Level:      hclog.Info,
				JSONFormat: true,
			}),
		})
		return nil
	}

	return ServeJSON(context.Background(), impl, stdin, stdout)
}

// ServeJSON handles one JSON-stdio request.
func ServeJSON(ctx context.Context, impl OutputPlugin, stdin io.Reader, stdout io.Writer) error {
	var tokens TokenData
	if err := json.NewDecoder(stdin).Decode(&tokens); err != nil {
		return fmt.Errorf("failed to decode tokens: %w", err)
	}

	files, err := impl.Generate(ctx, tokens)
	if err != nil {
		return err
	}
	if files == nil {
		files = map[string][]byte{}
	}

	return json.NewEncoder(stdout).Encode(files)
}

// Metadata fills the protocol fields of impl's metadata.
func Metadata(impl OutputPlugin, protocol PluginType) PluginInfo {
	info := impl.GetMetadata()
	info.Type = "output"
	if info.ProtocolVersion == "" {
		info.ProtocolVersion = ProtocolVersion
	}
	if info.PluginProtocol == "" {
		info.PluginProtocol = string(protocol)
	}
	return info
}
