// Package cli: create.go implements the create path of dsproject.
//
// The create path runs three steps in order:
//  1. Provision the .venv virtual environment and install the package list
//  2. Run `git init` when --git is set
//  3. Write data/, requirements.txt, .gitignore and the stub file
//
// The first failing step aborts the run. Steps that already completed are
// not rolled back, so a failed run can leave a partially scaffolded folder.
package cli

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/shinji-kodama/dsproject/internal/config"
	"github.com/shinji-kodama/dsproject/internal/model"
	"github.com/shinji-kodama/dsproject/internal/scaffold"
	"github.com/shinji-kodama/dsproject/internal/shell"
	"github.com/shinji-kodama/dsproject/internal/vcs"
	"github.com/shinji-kodama/dsproject/internal/venv"
)

// createDeps carries what the create path needs beyond the request.
type createDeps struct {
	runner shell.Runner
	cfg    *config.Config
	logger *zap.Logger
}

// createResult summarizes a successful create run.
type createResult struct {
	Action      string            `json:"action"`
	Path        string            `json:"path"`
	ProjectType model.ProjectType `json:"projectType"`
	Interpreter string            `json:"interpreter"`
	Packages    []string          `json:"packages"`
	Git         bool              `json:"git"`
	Files       []string          `json:"files"`
}

// runCreate is the main logic function for the create path.
func runCreate(ctx context.Context, w io.Writer, deps createDeps, req model.ProjectRequest, targetDir string) error {
	logger := deps.logger
	logger.Debug("creating data science environment",
		zap.String("path", targetDir),
		zap.Stringer("projectType", req.ProjectType),
		zap.Bool("git", req.InitVCS),
		zap.Bool("verbose", req.Verbose))

	// Step 1: Virtual environment and packages.
	provisioner := venv.NewProvisioner(deps.runner, venv.Options{
		Python:   deps.cfg.Python,
		IndexURL: deps.cfg.PipIndexURL,
		Logger:   logger,
	})
	env, err := provisioner.Provision(ctx, targetDir)
	if err != nil {
		return err
	}

	// Step 2: Optional git repository.
	if req.InitVCS {
		if err := vcs.NewInitializer(deps.runner, deps.cfg.Git, logger).Init(ctx, targetDir); err != nil {
			return err
		}
	}

	// Step 3: Scaffold files.
	written, err := scaffold.NewWriter(logger).Write(targetDir, req.ProjectType)
	if err != nil {
		return err
	}

	logger.Info("project ready", zap.String("path", targetDir))

	printCreateResult(w, &createResult{
		Action:      "created",
		Path:        targetDir,
		ProjectType: req.ProjectType,
		Interpreter: env.Interpreter,
		Packages:    env.Packages,
		Git:         req.InitVCS,
		Files:       written.Files,
	})
	return nil
}

// printCreateResult outputs the create result in text or JSON format.
func printCreateResult(w io.Writer, res *createResult) {
	if IsJSONOutput() {
		printJSON(w, res)
		return
	}

	fmt.Fprintf(w, "Created data science project at %s\n", res.Path)
	fmt.Fprintf(w, "  Interpreter: %s\n", res.Interpreter)
	fmt.Fprintf(w, "  Installed %d packages\n", len(res.Packages))
	for _, f := range res.Files {
		fmt.Fprintf(w, "  Wrote %s\n", f)
	}
	if res.Git {
		fmt.Fprintln(w, "  Initialized git repository")
	}
}
