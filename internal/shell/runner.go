// Package shell runs external tools (python, pip, git) as child processes
// and reports their outcome as a Result.
//
// Every invocation names its working directory explicitly through
// Command.Dir. Nothing in this package changes the process working
// directory.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external invocation.
type Command struct {
	// Dir is the working directory of the child process. Required.
	Dir string

	// Name is the executable, resolved through PATH when not absolute.
	Name string

	// Args are the arguments passed after Name.
	Args []string

	// Env holds extra environment variables layered over os.Environ().
	Env map[string]string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of a finished child process.
type Result struct {
	Command  Command
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// ExitError is returned when a child process ran but exited non-zero.
type ExitError struct {
	Result *Result
}

// Error includes the command line, the exit status and the trimmed stderr.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Result.Command, e.Result.ExitCode)
	if stderr := strings.TrimSpace(e.Result.Stderr); stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, lastLine(stderr))
	}
	return msg
}

// Runner executes commands. ExecRunner is the production implementation;
// tests substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the command, waits for it to exit and captures its output.
//
// A non-zero exit returns both the Result and an *ExitError. A command that
// cannot be started (missing binary, bad Dir) returns a nil Result and the
// exec error. There is no timeout; the call blocks until the child exits or
// ctx is cancelled.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	if c.Dir == "" {
		return nil, errors.New("shell: command directory must be set")
	}

	// #nosec G204 -- executables and arguments are built internally
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Command: c,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitError{Result: res}
		}
		return nil, fmt.Errorf("failed to run %s: %w", c, err)
	}

	return res, nil
}

// lastLine returns the final non-empty line of s. pip and git put the
// useful part of a failure at the end of stderr.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
