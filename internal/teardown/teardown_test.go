package teardown

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dsproject/internal/model"
)

// setupProject creates a directory that looks like a fully scaffolded
// project: every allow-listed folder (with nested content) and file.
func setupProject(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "demo")
	for _, d := range []string{
		filepath.Join(model.VenvDir, "bin"),
		filepath.Join(model.VenvDir, "lib", "site-packages"),
		model.DataDir,
		filepath.Join(model.GitDir, "objects"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0755))
	}
	for _, f := range []string{
		filepath.Join(model.VenvDir, "bin", "python"),
		filepath.Join(model.DataDir, "raw.csv"),
		model.ScriptFile,
		model.NotebookFile,
		model.RequirementsFile,
		model.GitignoreFile,
		model.DSStoreFile,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}
	return dir
}

func TestSafeDelete_FullProject(t *testing.T) {
	dir := setupProject(t)

	report, err := NewExecutor(nil).SafeDelete(dir)
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "project directory should be gone")
	assert.Equal(t, []string{
		".venv", "data", ".git",
		"solution.py", "solution.ipynb", "requirements.txt", ".gitignore", ".DS_Store",
	}, report.Removed)
}

// TestSafeDelete_PartialProject verifies that missing scaffold entries are
// skipped rather than treated as errors.
func TestSafeDelete_PartialProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "partial")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, model.VenvDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.RequirementsFile), []byte("numpy"), 0644))

	report, err := NewExecutor(nil).SafeDelete(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".venv", "requirements.txt"}, report.Removed)
	assert.NoDirExists(t, dir)
}

func TestSafeDelete_EmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.Mkdir(dir, 0755))

	report, err := NewExecutor(nil).SafeDelete(dir)
	require.NoError(t, err)
	assert.Empty(t, report.Removed)
	assert.NoDirExists(t, dir)
}

// TestSafeDelete_UnexpectedFile verifies the safety property: a file the
// tool did not create blocks deletion and survives.
func TestSafeDelete_UnexpectedFile(t *testing.T) {
	dir := setupProject(t)
	notes := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(notes, []byte("keep me"), 0644))

	_, err := NewExecutor(nil).SafeDelete(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitSafetyViolation, cliErr.Code)
	assert.Contains(t, err.Error(), "refusing to delete")
	assert.Contains(t, err.Error(), "notes.md")
	assert.True(t, IsSafetyViolation(err))

	assert.DirExists(t, dir)
	assert.FileExists(t, notes)
}

func TestSafeDelete_UnexpectedFolder(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "models"), 0755))

	_, err := NewExecutor(nil).SafeDelete(dir)
	require.Error(t, err)
	assert.True(t, IsSafetyViolation(err))

	var residual *ResidualError
	require.True(t, errors.As(err, &residual))
	assert.Equal(t, []string{"models"}, residual.Entries)
	assert.DirExists(t, dir)
}

func TestIsSafetyViolation(t *testing.T) {
	assert.False(t, IsSafetyViolation(errors.New("other")))
	assert.False(t, IsSafetyViolation(nil))
}
