package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type mockOutputPlugin struct {
	files       map[string][]byte
	metadata    PluginInfo
	flagHelp    []FlagHelp
	generateErr error
	postExecErr error
	received    TokenData
	written     []string
}

func (m *mockOutputPlugin) Generate(_ context.Context, tokens TokenData) (map[string][]byte, error) {
	m.received = tokens
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.files, nil
}

func (m *mockOutputPlugin) PostExecute(_ context.Context, files []string) error {
	m.written = files
	return m.postExecErr
}

func (m *mockOutputPlugin) GetMetadata() PluginInfo {
	return m.metadata
}

func (m *mockOutputPlugin) GetFlagHelp() []FlagHelp {
	return m.flagHelp
}

func testTokens() TokenData {
	return TokenData{
		Palette: "professional",
		Colours: []TokenColour{
			{Name: "primary", Hex: "#1e40af", RGB: RGBColour{R: 30, G: 64, B: 175}, HSL: HSLColour{H: 226, S: 71, L: 40}},
			{Name: "neutral-900", Hex: "#0f172a", RGB: RGBColour{R: 15, G: 23, B: 42}},
		},
		Light: map[string]string{"text": "neutral-900"},
		Typography: TypographyData{
			Preset: "modern",
			Steps:  []ScaleStep{{Name: "base", Value: 1, Min: 0.875, Preferred: 1.25, Max: 1.125, Clamp: "clamp(0.875rem, 1.25vw, 1.125rem)"}},
		},
	}
}

// TestOutputPluginRPC tests the output plugin RPC wrapper.
func TestOutputPluginRPC(t *testing.T) {
	mock := &mockOutputPlugin{
		files: map[string][]byte{
			"tokens.scss": []byte("$primary: #1e40af;"),
		},
		metadata: PluginInfo{
			Name:            "test-output",
			Type:            "output",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			Description:     "Test output plugin",
			PluginProtocol:  string(PluginTypeGoPlugin),
		},
	}

	rpc := &OutputPluginRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := rpc.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}

		rpcServer, ok := server.(*OutputPluginRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := rpc.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if _, ok := client.(*OutputPluginRPCClient); !ok {
			t.Fatal("Client() returned wrong type")
		}
	})

	t.Run("PluginMap", func(t *testing.T) {
		m := PluginMap(mock)
		if _, ok := m[DispenseName].(*OutputPluginRPC); !ok {
			t.Fatalf("PluginMap()[%q] has wrong type", DispenseName)
		}
	})
}

// TestOutputPluginRPCServer tests the output RPC server methods.
func TestOutputPluginRPCServer(t *testing.T) {
	mock := &mockOutputPlugin{
		files: map[string][]byte{
			"tokens.scss": []byte("$primary: #1e40af;"),
		},
		metadata: PluginInfo{Name: "test-output"},
		flagHelp: []FlagHelp{{Name: "prefix", Type: "string"}},
	}

	server := &OutputPluginRPCServer{Impl: mock}

	t.Run("Generate", func(t *testing.T) {
		var resp map[string][]byte
		if err := server.Generate(testTokens(), &resp); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if _, ok := resp["tokens.scss"]; !ok {
			t.Error("Generate() missing expected file 'tokens.scss'")
		}
		if mock.received.Palette != "professional" {
			t.Errorf("plugin received palette %q", mock.received.Palette)
		}
	})

	t.Run("GenerateError", func(t *testing.T) {
		failing := &OutputPluginRPCServer{Impl: &mockOutputPlugin{generateErr: errors.New("boom")}}
		var resp map[string][]byte
		if err := failing.Generate(testTokens(), &resp); err == nil {
			t.Error("Generate() should return the plugin error")
		}
	})

	t.Run("PostExecute", func(t *testing.T) {
		var resp string
		if err := server.PostExecute([]string{"tokens.scss"}, &resp); err != nil {
			t.Fatalf("PostExecute() error = %v", err)
		}
		if resp != "" {
			t.Errorf("PostExecute() resp = %q, want empty", resp)
		}
		if len(mock.written) != 1 {
			t.Errorf("plugin saw %d written files, want 1", len(mock.written))
		}
	})

	t.Run("PostExecuteError", func(t *testing.T) {
		failing := &OutputPluginRPCServer{Impl: &mockOutputPlugin{postExecErr: errors.New("reload failed")}}
		var resp string
		if err := failing.PostExecute(nil, &resp); err != nil {
			t.Fatalf("PostExecute() transport error = %v", err)
		}
		if resp != "reload failed" {
			t.Errorf("PostExecute() resp = %q, want %q", resp, "reload failed")
		}
	})

	t.Run("GetMetadata", func(t *testing.T) {
		var resp PluginInfo
		if err := server.GetMetadata(nil, &resp); err != nil {
			t.Fatalf("GetMetadata() error = %v", err)
		}
		if resp.Name != "test-output" {
			t.Errorf("GetMetadata() name = %q, want %q", resp.Name, "test-output")
		}
	})

	t.Run("GetFlagHelp", func(t *testing.T) {
		var resp []FlagHelp
		if err := server.GetFlagHelp(nil, &resp); err != nil {
			t.Fatalf("GetFlagHelp() error = %v", err)
		}
		if len(resp) != 1 || resp[0].Name != "prefix" {
			t.Fatalf("GetFlagHelp() = %+v", resp)
		}
	})
}

// TestRPCError tests the RPCError type.
func TestRPCError(t *testing.T) {
	err := &RPCError{Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("RPCError.Error() = %q, want %q", err.Error(), "test error")
	}
}

func TestTokenDataColour(t *testing.T) {
	tokens := testTokens()

	c, ok := tokens.Colour("primary")
	if !ok || c.Hex != "#1e40af" {
		t.Errorf("Colour(primary) = %+v, %v", c, ok)
	}
	if _, ok := tokens.Colour("missing"); ok {
		t.Error("Colour(missing) should not be found")
	}
}

func TestServeJSON(t *testing.T) {
	mock := &mockOutputPlugin{files: map[string][]byte{"out.txt": []byte("hello")}}

	in, err := json.Marshal(testTokens())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := ServeJSON(context.Background(), mock, bytes.NewReader(in), &out); err != nil {
		t.Fatalf("ServeJSON() error = %v", err)
	}

	var files map[string][]byte
	if err := json.Unmarshal(out.Bytes(), &files); err != nil {
		t.Fatalf("output is not a JSON file map: %v", err)
	}
	if string(files["out.txt"]) != "hello" {
		t.Errorf("out.txt = %q, want %q", files["out.txt"], "hello")
	}
	if got := mock.received.Typography.Steps[0].Clamp; got != "clamp(0.875rem, 1.25vw, 1.125rem)" {
		t.Errorf("received clamp = %q", got)
	}

	if err := ServeJSON(context.Background(), mock, strings.NewReader("not json"), &out); err == nil {
		t.Error("ServeJSON() should reject malformed input")
	}
}

func TestRunPluginInfo(t *testing.T) {
	mock := &mockOutputPlugin{metadata: PluginInfo{Name: "scss", Version: "1.2.3"}}

	var out bytes.Buffer
	if err := run(mock, []string{"--plugin-info"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	var info PluginInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("invalid plugin info: %v", err)
	}
	if info.Type != "output" || info.ProtocolVersion != ProtocolVersion || info.PluginProtocol != string(PluginTypeGoPlugin) {
		t.Errorf("plugin info = %+v", info)
	}
}
