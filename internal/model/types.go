// Package model defines the domain types for the dsproject CLI.
//
// These types are transient: a ProjectRequest is built once from the command
// line and passed through the create or cleanup flow. The only durable output
// of a run is the scaffolded directory itself.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ProjectType selects which stub file the scaffold writer creates.
type ProjectType string

const (
	// ProjectNotebook produces solution.ipynb.
	ProjectNotebook ProjectType = "jupyter-notebook"

	// ProjectScript produces solution.py.
	ProjectScript ProjectType = "python"
)

// String returns the string representation of ProjectType.
func (p ProjectType) String() string {
	return string(p)
}

// IsValid checks whether the ProjectType value is one of the
// predefined project types.
func (p ProjectType) IsValid() bool {
	switch p {
	case ProjectNotebook, ProjectScript:
		return true
	default:
		return false
	}
}

// StubFile returns the file name of the stub written for this project type.
func (p ProjectType) StubFile() string {
	if p == ProjectScript {
		return ScriptFile
	}
	return NotebookFile
}

// ParseProjectType converts a string to a ProjectType.
// Matching is case-insensitive.
func ParseProjectType(s string) (ProjectType, error) {
	pt := ProjectType(strings.ToLower(strings.TrimSpace(s)))
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid project type: %q (valid: jupyter-notebook, python)", s)
	}
	return pt, nil
}

// Names of the entries the tool creates inside a project directory.
// Teardown removes exactly these and nothing else.
const (
	VenvDir          = ".venv"
	DataDir          = "data"
	GitDir           = ".git"
	ScriptFile       = "solution.py"
	NotebookFile     = "solution.ipynb"
	RequirementsFile = "requirements.txt"
	GitignoreFile    = ".gitignore"
	DSStoreFile      = ".DS_Store"
)

// PackageList is the fixed, ordered set of libraries installed into every
// project environment and written to requirements.txt.
var PackageList = []string{
	"numpy",
	"pandas",
	"openpyxl",
	"scikit-learn",
	"matplotlib",
	"seaborn",
	"notebook",
}

// IgnorePatterns is the fixed, ordered content of the generated .gitignore.
var IgnorePatterns = []string{
	"*.txt",
	"*.csv",
	"*.xlsx",
	"*.xls",
	"*.ipynb_checkpoints",
	"*.vscode",
	".git",
}

// Packages returns a copy of PackageList so callers cannot reorder the
// shared slice.
func Packages() []string {
	return append([]string(nil), PackageList...)
}

// ProjectRequest is the validated input for a single run.
type ProjectRequest struct {
	// BasePath is the existing directory under which the project lives.
	BasePath string `json:"basePath"`

	// Name is the project folder name. Must pass validate.ValidateName.
	Name string `json:"name"`

	// ProjectType selects the stub file.
	ProjectType ProjectType `json:"projectType"`

	// InitVCS runs `git init` in the project directory when true.
	InitVCS bool `json:"initVcs"`

	// Cleanup switches the run to teardown mode.
	Cleanup bool `json:"cleanup"`

	// Verbose lowers the log level to debug.
	Verbose bool `json:"verbose"`
}

// TargetDir returns the absolute project directory BasePath/Name.
func (r ProjectRequest) TargetDir() (string, error) {
	p, err := filepath.Abs(filepath.Join(r.BasePath, r.Name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve project path: %w", err)
	}
	return p, nil
}

// ExitCode defines the process exit codes of the CLI. Each error category of
// the tool maps to its own code so scripts can tell them apart.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidInput indicates a bad base path or project name. Raised
	// before anything on disk is touched.
	ExitInvalidInput ExitCode = 2

	// ExitFilesystemError indicates a directory or file could not be
	// created, written, or removed.
	ExitFilesystemError ExitCode = 3

	// ExitExternalToolFailure indicates python, pip, or git exited non-zero
	// or could not be started.
	ExitExternalToolFailure ExitCode = 4

	// ExitSafetyViolation indicates teardown found entries it did not create
	// and refused to delete the directory.
	ExitSafetyViolation ExitCode = 5
)

// String returns a short name for the exit code category.
func (c ExitCode) String() string {
	switch c {
	case ExitSuccess:
		return "success"
	case ExitInvalidInput:
		return "invalid_input"
	case ExitFilesystemError:
		return "filesystem_error"
	case ExitExternalToolFailure:
		return "external_tool_failure"
	case ExitSafetyViolation:
		return "safety_violation"
	default:
		return "general_error"
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// CodeOf returns the exit code carried by err, ExitSuccess for nil, and
// ExitGeneralError for errors that are not CLIErrors.
func CodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
