package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dsproject/internal/model"
	"github.com/shinji-kodama/dsproject/internal/shell"
	"github.com/shinji-kodama/dsproject/internal/shell/shelltest"
)

// requireGit skips the test when no git binary is available.
func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// TestInit_RealGit runs the real git binary and checks that the
// repository directory appears.
func TestInit_RealGit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	err := NewInitializer(shell.NewExecRunner(), "", nil).Init(context.Background(), dir)
	require.NoError(t, err)

	assert.True(t, IsRepository(dir))
	assert.DirExists(t, filepath.Join(dir, ".git", "objects"))
}

func TestInit_CommandShape(t *testing.T) {
	dir := t.TempDir()
	runner := &shelltest.FakeRunner{}

	err := NewInitializer(runner, "/usr/local/bin/git", nil).Init(context.Background(), dir)
	require.NoError(t, err)

	cmds := runner.Recorded()
	require.Len(t, cmds, 1)
	assert.Equal(t, "/usr/local/bin/git", cmds[0].Name)
	assert.Equal(t, []string{"-C", dir, "init"}, cmds[0].Args)
	assert.Equal(t, dir, cmds[0].Dir)
}

func TestInit_Failure(t *testing.T) {
	runner := &shelltest.FakeRunner{Handler: func(cmd shell.Command) (*shell.Result, error) {
		return shelltest.Fail(cmd, 128, "fatal: cannot mkdir .git: Permission denied")
	}}

	err := NewInitializer(runner, "git", nil).Init(context.Background(), t.TempDir())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitExternalToolFailure, cliErr.Code)
	assert.Contains(t, err.Error(), "git init failed")
	assert.Contains(t, err.Error(), "Permission denied")
}

func TestInit_MissingBinary(t *testing.T) {
	err := NewInitializer(shell.NewExecRunner(), "dsproject-no-such-git", nil).
		Init(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, model.ExitExternalToolFailure, model.CodeOf(err))
}

// TestIsRepository distinguishes a .git directory from a .git file
// pointer and from no .git at all.
func TestIsRepository(t *testing.T) {
	plain := t.TempDir()
	assert.False(t, IsRepository(plain))

	withFile := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(withFile, ".git"), []byte("gitdir: /elsewhere\n"), 0644))
	assert.False(t, IsRepository(withFile))

	withDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(withDir, ".git"), 0755))
	assert.True(t, IsRepository(withDir))
}
