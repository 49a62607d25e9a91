package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// nbformat version written by NewNotebook. 4.5 is the first minor version
// that requires cell ids.
const (
	NBFormat      = 4
	NBFormatMinor = 5
)

// Cell types.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// Notebook is the subset of the Jupyter nbformat v4 document that the
// scaffolder writes and reads back.
type Notebook struct {
	Cells         []Cell                 `json:"cells"`
	Metadata      map[string]interface{} `json:"metadata"`
	NBFormat      int                    `json:"nbformat"`
	NBFormatMinor int                    `json:"nbformat_minor"`
}

// Cell is a single notebook cell. Source is held as one string and
// serialized as a list of lines, the way Jupyter writes it.
type Cell struct {
	ID             string
	CellType       string
	Source         string
	Metadata       map[string]interface{}
	ExecutionCount *int
	Outputs        []json.RawMessage
}

// NewCellID returns an 8 character hex id, the length Jupyter generates.
func NewCellID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewNotebook returns an empty v4.5 notebook.
func NewNotebook() *Notebook {
	return &Notebook{
		Cells:         []Cell{},
		Metadata:      map[string]interface{}{},
		NBFormat:      NBFormat,
		NBFormatMinor: NBFormatMinor,
	}
}

// NewMarkdownCell returns a markdown cell with a fresh id.
func NewMarkdownCell(source string) Cell {
	return Cell{ID: NewCellID(), CellType: CellMarkdown, Source: source}
}

// NewCodeCell returns an unexecuted code cell with a fresh id.
func NewCodeCell(source string) Cell {
	return Cell{ID: NewCellID(), CellType: CellCode, Source: source}
}

type markdownCellJSON struct {
	CellType string                 `json:"cell_type"`
	ID       string                 `json:"id"`
	Metadata map[string]interface{} `json:"metadata"`
	Source   []string               `json:"source"`
}

type codeCellJSON struct {
	CellType       string                 `json:"cell_type"`
	ExecutionCount *int                   `json:"execution_count"`
	ID             string                 `json:"id"`
	Metadata       map[string]interface{} `json:"metadata"`
	Outputs        []json.RawMessage      `json:"outputs"`
	Source         []string               `json:"source"`
}

// MarshalJSON writes the fields nbformat requires for the cell type. Code
// cells always carry execution_count (null when unexecuted) and outputs.
func (c Cell) MarshalJSON() ([]byte, error) {
	meta := c.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}
	switch c.CellType {
	case CellMarkdown:
		return json.Marshal(markdownCellJSON{
			CellType: c.CellType,
			ID:       c.ID,
			Metadata: meta,
			Source:   splitLines(c.Source),
		})
	case CellCode:
		outputs := c.Outputs
		if outputs == nil {
			outputs = []json.RawMessage{}
		}
		return json.Marshal(codeCellJSON{
			CellType:       c.CellType,
			ExecutionCount: c.ExecutionCount,
			ID:             c.ID,
			Metadata:       meta,
			Outputs:        outputs,
			Source:         splitLines(c.Source),
		})
	default:
		return nil, fmt.Errorf("unsupported cell type %q", c.CellType)
	}
}

// UnmarshalJSON accepts source either as a single string or as a list of
// lines.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		CellType       string                 `json:"cell_type"`
		ExecutionCount *int                   `json:"execution_count"`
		ID             string                 `json:"id"`
		Metadata       map[string]interface{} `json:"metadata"`
		Outputs        []json.RawMessage      `json:"outputs"`
		Source         json.RawMessage        `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	source, err := decodeSource(raw.Source)
	if err != nil {
		return fmt.Errorf("cell %q: %w", raw.ID, err)
	}

	*c = Cell{
		ID:             raw.ID,
		CellType:       raw.CellType,
		Source:         source,
		Metadata:       raw.Metadata,
		ExecutionCount: raw.ExecutionCount,
		Outputs:        raw.Outputs,
	}
	return nil
}

func decodeSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", fmt.Errorf("source must be a string or a list of strings")
	}
	return strings.Join(lines, ""), nil
}

// splitLines splits s after each newline, keeping the newline on every
// line but the last.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Encode serializes the notebook with one-space indentation and a trailing
// newline, matching Jupyter's own output.
func (nb *Notebook) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// LoadNotebook reads and validates a notebook file.
func LoadNotebook(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}

	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("failed to parse notebook at %s: %w", path, err)
	}
	if nb.NBFormat != NBFormat {
		return nil, fmt.Errorf("unsupported nbformat %d at %s", nb.NBFormat, path)
	}
	return &nb, nil
}
