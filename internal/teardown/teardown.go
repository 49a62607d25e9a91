// Package teardown removes a project directory created by dsproject.
//
// Only the entries the scaffolder itself creates are removed. If anything
// else remains in the directory afterwards, the directory is left in place
// and SafeDelete returns an ExitSafetyViolation error.
package teardown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/dsproject/internal/model"
)

// removableDirs are deleted recursively.
var removableDirs = []string{model.VenvDir, model.DataDir, model.GitDir}

// removableFiles are deleted one by one.
var removableFiles = []string{
	model.ScriptFile,
	model.NotebookFile,
	model.RequirementsFile,
	model.GitignoreFile,
	model.DSStoreFile,
}

// Report lists what SafeDelete removed.
type Report struct {
	TargetDir string   `json:"targetDir"`
	Removed   []string `json:"removed"`
}

// Executor performs teardown and logs each step.
type Executor struct {
	logger *zap.Logger
}

// NewExecutor creates an Executor. A nil logger disables logging.
func NewExecutor(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{logger: logger.Named("teardown")}
}

// SafeDelete removes the allow-listed scaffold entries from targetDir and
// then targetDir itself. targetDir must already have been verified to exist.
func (e *Executor) SafeDelete(targetDir string) (*Report, error) {
	report := &Report{TargetDir: targetDir, Removed: []string{}}

	for _, name := range removableDirs {
		path := filepath.Join(targetDir, name)
		if !exists(path) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return report, model.WrapCLIError(model.ExitFilesystemError,
				fmt.Sprintf("failed to remove %s", path), err)
		}
		e.logger.Debug("removed folder", zap.String("path", path))
		report.Removed = append(report.Removed, name)
	}

	for _, name := range removableFiles {
		path := filepath.Join(targetDir, name)
		if !exists(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return report, model.WrapCLIError(model.ExitFilesystemError,
				fmt.Sprintf("failed to remove %s", path), err)
		}
		e.logger.Debug("removed file", zap.String("path", path))
		report.Removed = append(report.Removed, name)
	}

	residual, err := listEntries(targetDir)
	if err != nil {
		return report, model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to read %s", targetDir), err)
	}
	if len(residual) > 0 {
		return report, model.WrapCLIError(model.ExitSafetyViolation,
			"directory contains unrecognized files; refusing to delete",
			&ResidualError{Dir: targetDir, Entries: residual})
	}

	if err := os.Remove(targetDir); err != nil {
		return report, model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to remove %s", targetDir), err)
	}

	e.logger.Info("removed directory", zap.String("path", targetDir))
	return report, nil
}

// ResidualError names the entries that blocked deletion.
type ResidualError struct {
	Dir     string
	Entries []string
}

func (e *ResidualError) Error() string {
	return fmt.Sprintf("%s still contains %s", e.Dir, strings.Join(e.Entries, ", "))
}

// IsSafetyViolation reports whether err came from finding unrecognized
// entries during teardown.
func IsSafetyViolation(err error) bool {
	var residual *ResidualError
	return errors.As(err, &residual)
}

// exists uses Lstat so a dangling symlink named like a scaffold entry is
// still removed.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func listEntries(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
