// Package shelltest provides a recording shell.Runner for tests.
package shelltest

import (
	"context"
	"sync"

	"github.com/shinji-kodama/dsproject/internal/shell"
)

// Handler decides the outcome of one fake invocation. It may touch the
// filesystem to simulate the side effects of the real tool.
type Handler func(cmd shell.Command) (*shell.Result, error)

// FakeRunner records every command it receives. Commands succeed with an
// empty Result unless Handler says otherwise.
type FakeRunner struct {
	mu       sync.Mutex
	Handler  Handler
	Commands []shell.Command
}

// Run records cmd and delegates to Handler.
func (f *FakeRunner) Run(_ context.Context, cmd shell.Command) (*shell.Result, error) {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	f.mu.Unlock()

	if f.Handler != nil {
		return f.Handler(cmd)
	}
	return &shell.Result{Command: cmd}, nil
}

// Recorded returns a copy of the commands seen so far.
func (f *FakeRunner) Recorded() []shell.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shell.Command(nil), f.Commands...)
}

// Fail builds the Result and *shell.ExitError a real runner returns for a
// non-zero exit.
func Fail(cmd shell.Command, code int, stderr string) (*shell.Result, error) {
	res := &shell.Result{Command: cmd, ExitCode: code, Stderr: stderr}
	return res, &shell.ExitError{Result: res}
}
