package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/dsproject/internal/model"
	"github.com/shinji-kodama/dsproject/internal/shell"
)

// Initializer creates Git repositories by invoking the git CLI.
type Initializer struct {
	runner shell.Runner
	git    string
	logger *zap.Logger
}

// NewInitializer creates an Initializer. gitBinary defaults to "git" and a
// nil logger disables logging.
func NewInitializer(runner shell.Runner, gitBinary string, logger *zap.Logger) *Initializer {
	if gitBinary == "" {
		gitBinary = "git"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Initializer{runner: runner, git: gitBinary, logger: logger.Named("vcs")}
}

// Init runs `git init` in dir.
func (i *Initializer) Init(ctx context.Context, dir string) error {
	out, err := i.runGit(ctx, dir, "init")
	if err != nil {
		return err
	}
	i.logger.Info("instantiated git repository",
		zap.String("path", dir), zap.String("output", strings.TrimSpace(out)))
	return nil
}

// IsRepository reports whether dir has a .git directory of its own.
//
// A .git file (worktree or submodule pointer) does not count: teardown
// only knows how to remove a .git directory.
func IsRepository(dir string) bool {
	info, err := os.Lstat(filepath.Join(dir, model.GitDir))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// runGit executes a git command against dir.
//
// dir is passed via -C as well as the working directory so that git never
// falls back to the process working directory. Failures come back as a
// model.CLIError with ExitExternalToolFailure including git's stderr.
func (i *Initializer) runGit(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	res, err := i.runner.Run(ctx, shell.Command{Dir: dir, Name: i.git, Args: fullArgs})
	if err == nil && res != nil && !res.Success() {
		err = &shell.ExitError{Result: res}
	}
	if err != nil {
		return "", model.WrapCLIError(model.ExitExternalToolFailure,
			fmt.Sprintf("git %s failed", strings.Join(args, " ")), err)
	}
	if res == nil {
		return "", nil
	}
	return res.Stdout, nil
}
