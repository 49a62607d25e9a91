// Package venv provisions the isolated Python environment of a project and
// installs the fixed package list into it.
//
// Pip is always invoked through the environment's own interpreter
// (`<venv python> -m pip ...`) so no activation script and no shell are
// involved. The only OS-specific part is where that interpreter lives.
package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/shinji-kodama/dsproject/internal/model"
	"github.com/shinji-kodama/dsproject/internal/shell"
)

// Step names used in logs and error messages.
const (
	StepCreate     = "create virtual environment"
	StepUpgradePip = "upgrade pip"
	StepInstall    = "install packages"
)

// Options configures a Provisioner.
type Options struct {
	// Python is the host interpreter that runs `-m venv`.
	Python string

	// IndexURL, if set, is passed to pip as --index-url.
	IndexURL string

	// GOOS selects the interpreter layout. Defaults to runtime.GOOS.
	GOOS string

	Logger *zap.Logger
}

// Environment describes a provisioned virtual environment.
type Environment struct {
	Dir         string   `json:"dir"`
	Interpreter string   `json:"interpreter"`
	Packages    []string `json:"packages"`
}

// Provisioner creates a virtual environment and installs packages into it.
type Provisioner struct {
	runner   shell.Runner
	python   string
	indexURL string
	goos     string
	logger   *zap.Logger
}

// NewProvisioner creates a Provisioner that runs commands through runner.
func NewProvisioner(runner shell.Runner, opts Options) *Provisioner {
	p := &Provisioner{
		runner:   runner,
		python:   opts.Python,
		indexURL: opts.IndexURL,
		goos:     opts.GOOS,
		logger:   opts.Logger,
	}
	if p.goos == "" {
		p.goos = runtime.GOOS
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	p.logger = p.logger.Named("venv")
	return p
}

// InterpreterPath returns the python executable inside venvDir for goos.
func InterpreterPath(goos, venvDir string) string {
	if goos == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python")
}

// Provision runs the full sequence in targetDir: create the directory if
// needed, create .venv, upgrade pip, install model.PackageList. The first
// failing step aborts the sequence.
func (p *Provisioner) Provision(ctx context.Context, targetDir string) (*Environment, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to create project directory %s", targetDir), err)
	}
	p.logger.Debug("project directory ready", zap.String("path", targetDir))

	venvDir := filepath.Join(targetDir, model.VenvDir)
	if err := p.run(ctx, StepCreate, shell.Command{
		Dir:  targetDir,
		Name: p.python,
		Args: []string{"-m", "venv", model.VenvDir},
	}); err != nil {
		return nil, err
	}
	p.logger.Debug("virtual environment created", zap.String("path", venvDir))

	interp := InterpreterPath(p.goos, venvDir)
	p.logger.Debug("using environment interpreter", zap.String("interpreter", interp))

	if err := p.run(ctx, StepUpgradePip, p.pipCommand(targetDir, interp, "--upgrade", "pip")); err != nil {
		return nil, err
	}

	pkgs := model.Packages()
	if err := p.run(ctx, StepInstall, p.pipCommand(targetDir, interp, pkgs...)); err != nil {
		return nil, err
	}
	p.logger.Debug("completed installing packages", zap.Strings("packages", pkgs))

	return &Environment{Dir: venvDir, Interpreter: interp, Packages: pkgs}, nil
}

// pipCommand builds `<interp> -m pip install [--index-url URL] args...`.
func (p *Provisioner) pipCommand(dir, interp string, args ...string) shell.Command {
	full := []string{"-m", "pip", "install"}
	if p.indexURL != "" {
		full = append(full, "--index-url", p.indexURL)
	}
	full = append(full, args...)
	return shell.Command{
		Dir:  dir,
		Name: interp,
		Args: full,
		Env:  map[string]string{"PIP_DISABLE_PIP_VERSION_CHECK": "1"},
	}
}

// run executes one step and converts any failure into an
// ExitExternalToolFailure error naming the step.
func (p *Provisioner) run(ctx context.Context, step string, cmd shell.Command) error {
	p.logger.Debug("running", zap.String("step", step), zap.Stringer("command", cmd))

	res, err := p.runner.Run(ctx, cmd)
	if err != nil {
		return model.WrapCLIError(model.ExitExternalToolFailure, fmt.Sprintf("failed to %s", step), err)
	}
	if res != nil && !res.Success() {
		return model.WrapCLIError(model.ExitExternalToolFailure, fmt.Sprintf("failed to %s", step),
			&shell.ExitError{Result: res})
	}
	return nil
}
