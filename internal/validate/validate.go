// Package validate checks user-supplied paths and project names before the
// CLI touches the filesystem.
//
// Both checks return a model.CLIError with ExitInvalidInput so the CLI layer
// can abort with a distinct exit code.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/shinji-kodama/dsproject/internal/model"
)

// disallowedNameChars lists characters that may not appear in a project
// folder name. The period also rules out "." and "..".
const disallowedNameChars = ",./\\\n\t?"

// VerifyDirectory returns path unchanged if it exists on the filesystem.
func VerifyDirectory(path string) (string, error) {
	if path == "" {
		return "", model.NewCLIError(model.ExitInvalidInput, "invalid file path supplied: path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return "", model.WrapCLIError(model.ExitInvalidInput,
			fmt.Sprintf("invalid file path supplied: %s", path), err)
	}
	return path, nil
}

// ValidateName rejects empty names and names containing any character
// from disallowedNameChars.
func ValidateName(name string) error {
	if name == "" {
		return model.NewCLIError(model.ExitInvalidInput, "invalid folder name supplied: name must not be empty")
	}
	if i := strings.IndexAny(name, disallowedNameChars); i >= 0 {
		return model.NewCLIError(model.ExitInvalidInput,
			fmt.Sprintf("invalid folder name supplied: %q contains disallowed character %q", name, name[i]))
	}
	return nil
}
