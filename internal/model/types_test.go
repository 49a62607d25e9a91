package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProjectType_IsValid checks that only defined project types pass validation.
func TestProjectType_IsValid(t *testing.T) {
	assert.True(t, ProjectNotebook.IsValid())
	assert.True(t, ProjectScript.IsValid())
	assert.False(t, ProjectType("notebook").IsValid())
	assert.False(t, ProjectType("").IsValid())
}

// TestParseProjectType verifies string-to-type conversion,
// including case normalization and error cases.
func TestParseProjectType(t *testing.T) {
	tests := []struct {
		input    string
		expected ProjectType
		hasError bool
	}{
		{"jupyter-notebook", ProjectNotebook, false},
		{"python", ProjectScript, false},
		{"Python", ProjectScript, false},
		{"JUPYTER-NOTEBOOK", ProjectNotebook, false},
		{"r", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseProjectType(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestProjectType_StubFile(t *testing.T) {
	assert.Equal(t, "solution.ipynb", ProjectNotebook.StubFile())
	assert.Equal(t, "solution.py", ProjectScript.StubFile())
}

// TestPackageList_Order pins the installed package list. requirements.txt
// and the pip invocation both depend on this exact order.
func TestPackageList_Order(t *testing.T) {
	assert.Equal(t,
		[]string{"numpy", "pandas", "openpyxl", "scikit-learn", "matplotlib", "seaborn", "notebook"},
		PackageList)
}

// TestPackages_ReturnsCopy verifies that mutating the returned slice
// does not leak into the shared list.
func TestPackages_ReturnsCopy(t *testing.T) {
	pkgs := Packages()
	pkgs[0] = "changed"
	assert.Equal(t, "numpy", PackageList[0])
}

func TestProjectRequest_TargetDir(t *testing.T) {
	base := t.TempDir()
	req := ProjectRequest{BasePath: base, Name: "demo"}

	dir, err := req.TargetDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "demo"), dir)
	assert.True(t, filepath.IsAbs(dir))
}

// TestCLIError verifies the error message format with and without
// an underlying error, and that Unwrap exposes the wrapped error.
func TestCLIError(t *testing.T) {
	plain := NewCLIError(ExitInvalidInput, "invalid folder name supplied")
	assert.Equal(t, "invalid folder name supplied", plain.Error())
	assert.Nil(t, plain.Unwrap())

	inner := errors.New("permission denied")
	wrapped := WrapCLIError(ExitFilesystemError, "failed to create data folder", inner)
	assert.Equal(t, "failed to create data folder: permission denied", wrapped.Error())
	assert.ErrorIs(t, wrapped, inner)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"cli error", NewCLIError(ExitSafetyViolation, "refusing"), ExitSafetyViolation},
		{"wrapped cli error", fmt.Errorf("cleanup: %w", NewCLIError(ExitExternalToolFailure, "pip")), ExitExternalToolFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestExitCode_String(t *testing.T) {
	assert.Equal(t, "invalid_input", ExitInvalidInput.String())
	assert.Equal(t, "safety_violation", ExitSafetyViolation.String())
	assert.Equal(t, "general_error", ExitCode(42).String())
}
