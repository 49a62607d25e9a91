// Package model defines the domain types and value objects for the
// dsproject CLI.
//
// This package contains pure data structures with no external dependencies:
// the project request, the fixed package and ignore-pattern lists, and the
// names of every entry the scaffolder creates.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
