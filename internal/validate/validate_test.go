package validate

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dsproject/internal/model"
)

// requireInvalidInput asserts that err is a CLIError carrying ExitInvalidInput.
func requireInvalidInput(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr), "expected *model.CLIError, got %T", err)
	assert.Equal(t, model.ExitInvalidInput, cliErr.Code)
}

func TestVerifyDirectory(t *testing.T) {
	dir := t.TempDir()

	got, err := VerifyDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestVerifyDirectory_Missing(t *testing.T) {
	_, err := VerifyDirectory(filepath.Join(t.TempDir(), "does-not-exist"))
	requireInvalidInput(t, err)
	assert.Contains(t, err.Error(), "invalid file path supplied")
}

func TestVerifyDirectory_Empty(t *testing.T) {
	_, err := VerifyDirectory("")
	requireInvalidInput(t, err)
}

// TestValidateName covers every disallowed character plus a set of names
// that must be accepted.
func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "demo1", false},
		{"hyphen and underscore", "my-project_2", false},
		{"spaces allowed", "my project", false},
		{"unicode", "análisis", false},
		{"empty", "", true},
		{"comma", "a,b", true},
		{"period", "v1.0", true},
		{"dot only", ".", true},
		{"parent dir", "..", true},
		{"forward slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"newline", "a\nb", true},
		{"tab", "a\tb", true},
		{"question mark", "what?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				requireInvalidInput(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
