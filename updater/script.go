package updater

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/models"
)

// ExecRunner runs update scripts as child processes.
type ExecRunner struct{}

// Run executes script with version as its only argument. A script that
// cannot be started is reported with exit code -1 and the start error as
// its stderr.
func (ExecRunner) Run(ctx context.Context, script, version string) models.ProcessResult {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, script, version)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := models.ProcessResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Stderr = err.Error()
		}
	}

	log.G(ctx).Debugf("%s %s exited with %d after %s", script, version, result.ExitCode, result.Duration)
	if result.Stdout != "" {
		log.G(ctx).Debugf("Script output:\n%s", result.Stdout)
	}
	return result
}

// DefaultScriptDir is the directory of the running executable, where the
// update scripts live next to it.
func DefaultScriptDir() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "Locating executable")
	}
	resolved, err := filepath.EvalSymlinks(executable)
	if err != nil {
		return "", errors.Wrapf(err, "Resolving %s", executable)
	}
	return filepath.Dir(resolved), nil
}
