// Package cli: cleanup.go implements the cleanup path (--cleanup).
//
// Cleanup removes a project folder created by dsproject. The folder must
// exist, and it is only deleted when nothing but generated entries remain
// after the known scaffold entries are removed.
package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/shinji-kodama/dsproject/internal/teardown"
	"github.com/shinji-kodama/dsproject/internal/validate"
)

// runCleanup is the main logic function for the cleanup path.
func runCleanup(w io.Writer, logger *zap.Logger, targetDir string) error {
	if _, err := validate.VerifyDirectory(targetDir); err != nil {
		return err
	}
	logger.Debug("removing project", zap.String("path", targetDir))

	report, err := teardown.NewExecutor(logger).SafeDelete(targetDir)
	if err != nil {
		return err
	}

	printCleanupResult(w, report)
	return nil
}

// printCleanupResult outputs the cleanup result in text or JSON format.
func printCleanupResult(w io.Writer, report *teardown.Report) {
	if IsJSONOutput() {
		printJSON(w, map[string]interface{}{
			"action":  "removed",
			"path":    report.TargetDir,
			"removed": report.Removed,
		})
		return
	}

	fmt.Fprintf(w, "Removed directory at %s\n", report.TargetDir)
	for _, name := range report.Removed {
		fmt.Fprintf(w, "  Removed %s\n", name)
	}
}
