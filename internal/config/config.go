// Package config loads the tool settings that sit outside the command line:
// which python and git binaries to run, an optional package index, and the
// log encoding.
//
// Settings come from an optional config file (YAML, or JSON with comments)
// and from DSPROJECT_* environment variables. Environment variables always
// override values from the file.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/dsproject/internal/logging"
	"github.com/shinji-kodama/dsproject/internal/model"
)

// Config holds all settings not carried by CLI flags.
type Config struct {
	// Python is the host interpreter used to create the virtual environment.
	// Defaults to python3 on POSIX and python on Windows.
	Python string `yaml:"python" json:"python" env:"DSPROJECT_PYTHON"`

	// Git is the git executable used for `git init`.
	Git string `yaml:"git" json:"git" env:"DSPROJECT_GIT" env-default:"git"`

	// PipIndexURL is passed to pip as --index-url when set.
	PipIndexURL string `yaml:"pip_index_url" json:"pip_index_url" env:"DSPROJECT_PIP_INDEX_URL"`

	// LogFormat selects the log encoder: console or json.
	LogFormat string `yaml:"log_format" json:"log_format" env:"DSPROJECT_LOG_FORMAT" env-default:"console"`
}

// Load reads the optional config file at path, then overlays environment
// variables and fills defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitInvalidInput,
				fmt.Sprintf("failed to load config file %s", path), err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidInput, "failed to read environment configuration", err)
	}

	if cfg.Python == "" {
		cfg.Python = DefaultPython(runtime.GOOS)
	}

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidInput, "invalid configuration", err)
	}
	return cfg, nil
}

// DefaultPython returns the interpreter name found on a typical host.
func DefaultPython(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}

// Validate checks field values after loading.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("python executable must not be empty")
	}
	if strings.TrimSpace(c.Git) == "" {
		return fmt.Errorf("git executable must not be empty")
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("invalid log_format %q (valid: console, json)", c.LogFormat)
	}
	return nil
}

// readFile decodes a YAML or JSONC config file into cfg. Unknown keys are
// rejected so typos surface instead of being silently ignored.
func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			// An empty YAML document decodes to io.EOF; treat it as no settings.
			if len(bytes.TrimSpace(data)) == 0 {
				return nil
			}
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", filepath.Ext(path))
	}
	return nil
}
