package executor

import (
	"context"
	"io"
)

// call records one invocation of the mock runner.
type call struct {
	args  []string
	stdin []byte
}

// mockRunner answers --plugin-info with info and every other call with run.
type mockRunner struct {
	info  string
	run   func(args []string, stdin []byte) (stdout, stderr []byte, err error)
	calls []call
}

func (m *mockRunner) Run(ctx context.Context, _ string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	var in []byte
	if stdin != nil {
		var err error
		if in, err = io.ReadAll(stdin); err != nil {
			return nil, nil, err
		}
	}
	m.calls = append(m.calls, call{args: args, stdin: in})

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(args) == 1 && args[0] == "--plugin-info" {
		return []byte(m.info), nil, nil
	}
	if m.run != nil {
		return m.run(args, in)
	}
	return []byte("{}"), nil, nil
}
