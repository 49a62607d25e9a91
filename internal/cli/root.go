// Package cli implements the cobra-based command line of dsproject.
//
// The tool has a single command with two paths: the create path provisions
// a virtual environment, optionally runs git init, and writes the scaffold
// files; the cleanup path (--cleanup) tears a scaffolded directory down.
// This file defines the root command, its flags, and error/exit handling.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/dsproject/internal/config"
	"github.com/shinji-kodama/dsproject/internal/logging"
	"github.com/shinji-kodama/dsproject/internal/model"
	"github.com/shinji-kodama/dsproject/internal/shell"
	"github.com/shinji-kodama/dsproject/internal/validate"
)

// jsonOutput controls whether results and errors are printed as JSON.
// It is bound to the --json flag of the most recently built root command.
var jsonOutput bool

// version, commit, and date are set at build time via ldflags.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the raw flag values of a single invocation.
type rootFlags struct {
	filePath    string
	name        string
	projectType string
	verbose     bool
	cleanup     bool
	git         bool
	configPath  string
}

// NewRootCommand creates the dsproject command using the real process runner.
func NewRootCommand() *cobra.Command {
	return newRootCommand(shell.NewExecRunner())
}

// newRootCommand builds the command around runner so tests can substitute
// a fake for python, pip, and git.
func newRootCommand(runner shell.Runner) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dsproject",
		Short: "Set up the environment and files for a data science project",
		Long: `dsproject creates a data science project folder under --file_path:
a .venv virtual environment with numpy, pandas, openpyxl, scikit-learn,
matplotlib, seaborn and notebook installed, a data/ folder, requirements.txt,
.gitignore, and either solution.ipynb or solution.py.

With --cleanup it removes a project folder it created earlier. Folders that
contain anything besides the generated files are left untouched.

Examples:
  dsproject -f ~/work -n churn
  dsproject -f ~/work -n churn -p python --git
  dsproject -f ~/work -n churn --cleanup`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors lets Execute format errors (text or JSON).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), runner, flags)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.filePath, "file_path", "f", "", "Existing directory to set up the project in (required)")
	f.StringVarP(&flags.name, "name", "n", "", "Project folder name (required)")
	f.StringVarP(&flags.projectType, "project_type", "p", model.ProjectNotebook.String(),
		"Stub to create: jupyter-notebook or python")
	f.BoolVarP(&flags.verbose, "verbose", "v", true, "Log every step (use --verbose=false for less output)")
	f.BoolVarP(&flags.cleanup, "cleanup", "c", false, "Remove the project folder instead of creating it")
	f.BoolVarP(&flags.git, "git", "g", false, "Initialize a git repository in the project folder")
	f.StringVar(&flags.configPath, "config", "", "Config file (.yaml, .yml, .json, .jsonc)")
	f.BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// CLIError types carry their own exit codes; other errors exit with 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Code, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(os.Stderr, model.ExitGeneralError, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// run validates input, sets up logging, and dispatches to the cleanup or
// create path. Nothing on disk changes before validation passes.
func run(ctx context.Context, stdout, stderr io.Writer, runner shell.Runner, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := buildRequest(flags)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Verbose: req.Verbose,
		Format:  logging.Format(cfg.LogFormat),
		Output:  stderr,
	})
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidInput, "failed to set up logging", err)
	}
	defer func() { _ = logger.Sync() }()

	targetDir, err := req.TargetDir()
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidInput, "invalid project path", err)
	}

	if req.Cleanup {
		return runCleanup(stdout, logger, targetDir)
	}

	deps := createDeps{runner: runner, cfg: cfg, logger: logger}
	return runCreate(ctx, stdout, deps, req, targetDir)
}

// buildRequest turns raw flag values into a validated ProjectRequest.
func buildRequest(flags *rootFlags) (model.ProjectRequest, error) {
	if flags.filePath == "" {
		return model.ProjectRequest{}, model.NewCLIError(model.ExitInvalidInput, `required flag "file_path" not set`)
	}
	if _, err := validate.VerifyDirectory(flags.filePath); err != nil {
		return model.ProjectRequest{}, err
	}
	if err := validate.ValidateName(flags.name); err != nil {
		return model.ProjectRequest{}, err
	}
	projectType, err := model.ParseProjectType(flags.projectType)
	if err != nil {
		return model.ProjectRequest{}, model.WrapCLIError(model.ExitInvalidInput, "invalid --project_type", err)
	}

	return model.ProjectRequest{
		BasePath:    flags.filePath,
		Name:        flags.name,
		ProjectType: projectType,
		InitVCS:     flags.git,
		Cleanup:     flags.cleanup,
		Verbose:     flags.verbose,
	}, nil
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json flag.
func printError(w io.Writer, code model.ExitCode, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"kind":    code.String(),
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
