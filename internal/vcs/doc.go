// Package vcs initializes a Git repository inside a new project.
//
// Git is invoked as a child process through shell.Runner rather than through
// a Go Git library, so the repository matches what the user's own git would
// create (default branch, templates, hooks).
package vcs
