// Package scaffold writes the files of a new data-science project:
// the data folder, requirements.txt, .gitignore, and the notebook or
// script stub.
//
// Every file is written with truncate-on-open semantics, so running the
// scaffolder again over an existing project overwrites these files.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/dsproject/internal/model"
)

// Stub contents.
const (
	NotebookHeading = "# Solution Notebook"
	NotebookImports = "import numpy as np\nimport pandas as pd"
	ScriptImports   = "import pandas as pd\nimport numpy as np"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Result lists the entries written, relative to the project directory.
type Result struct {
	Files []string `json:"files"`
}

// Writer writes scaffold files into a project directory.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a Writer. A nil logger disables logging.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger.Named("scaffold")}
}

// RequirementsContent returns requirements.txt: one package per line,
// unpinned, no trailing newline.
func RequirementsContent() string {
	return strings.Join(model.PackageList, "\n")
}

// GitignoreContent returns the .gitignore body.
func GitignoreContent() string {
	return strings.Join(model.IgnorePatterns, "\n")
}

// SolutionNotebook builds the two-cell starter notebook.
func SolutionNotebook() *Notebook {
	nb := NewNotebook()
	nb.Cells = append(nb.Cells,
		NewMarkdownCell(NotebookHeading),
		NewCodeCell(NotebookImports),
	)
	return nb
}

// Write creates every scaffold entry in targetDir for the given project
// type. targetDir must already exist.
func (w *Writer) Write(targetDir string, projectType model.ProjectType) (*Result, error) {
	if !projectType.IsValid() {
		return nil, model.NewCLIError(model.ExitInvalidInput,
			fmt.Sprintf("invalid project type %q", projectType))
	}

	res := &Result{}

	if err := w.EnsureDataDir(targetDir); err != nil {
		return res, err
	}
	res.Files = append(res.Files, model.DataDir)

	if err := w.writeFile(targetDir, model.RequirementsFile, []byte(RequirementsContent())); err != nil {
		return res, err
	}
	res.Files = append(res.Files, model.RequirementsFile)

	if err := w.writeFile(targetDir, model.GitignoreFile, []byte(GitignoreContent())); err != nil {
		return res, err
	}
	res.Files = append(res.Files, model.GitignoreFile)

	switch projectType {
	case model.ProjectNotebook:
		if err := w.WriteNotebook(targetDir); err != nil {
			return res, err
		}
	case model.ProjectScript:
		if err := w.WriteScript(targetDir); err != nil {
			return res, err
		}
	}
	res.Files = append(res.Files, projectType.StubFile())

	return res, nil
}

// EnsureDataDir creates targetDir/data if it does not exist.
func (w *Writer) EnsureDataDir(targetDir string) error {
	path := filepath.Join(targetDir, model.DataDir)
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to create %s", path), err)
	}
	w.logger.Debug("data folder ready", zap.String("path", path))
	return nil
}

// WriteNotebook writes solution.ipynb.
func (w *Writer) WriteNotebook(targetDir string) error {
	data, err := SolutionNotebook().Encode()
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}
	if err := w.writeFile(targetDir, model.NotebookFile, data); err != nil {
		return err
	}
	w.logger.Debug("created jupyter notebook")
	return nil
}

// WriteScript writes solution.py.
func (w *Writer) WriteScript(targetDir string) error {
	if err := w.writeFile(targetDir, model.ScriptFile, []byte(ScriptImports)); err != nil {
		return err
	}
	w.logger.Debug("created python file")
	return nil
}

func (w *Writer) writeFile(targetDir, name string, data []byte) error {
	path := filepath.Join(targetDir, name)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to write %s", path), err)
	}
	w.logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
