// Package updater compares the installed version of an application with
// its latest release and runs the application's update script when they
// differ.
package updater

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/models"
)

type ReleaseSource interface {
	LatestRelease(ctx context.Context, app models.AppSpec) (*models.Release, error)
}

type VersionReader interface {
	LocalVersion(ctx context.Context, app models.AppSpec) (string, error)
}

type ScriptRunner interface {
	Run(ctx context.Context, script, version string) models.ProcessResult
}

type Notifier interface {
	Notify(ctx context.Context, message string) bool
}

// Decide triggers an update when the versions differ as strings or when forced.
func Decide(versions models.VersionPair, force bool) models.UpdateOutcome {
	if versions.Differs() || force {
		return models.UpdateTriggered
	}
	return models.NoUpdateNeeded
}

type Checker struct {
	Releases  ReleaseSource
	Versions  VersionReader
	Scripts   ScriptRunner
	Notifier  Notifier
	ScriptDir string
	DryRun    bool
}

// Check runs one release check for app. Errors fetching the latest release
// or reading the local version are returned; a failing update script is
// reported in the result and notified, never returned.
func (c *Checker) Check(ctx context.Context, app models.AppSpec, force bool) (*models.CheckResult, error) {
	ctx = log.WithField(ctx, "app", app.Name)

	release, err := c.Releases.LatestRelease(ctx, app)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not get latest %s release", app.Name)
	}
	local, err := c.Versions.LocalVersion(ctx, app)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not get local %s version", app.Name)
	}

	versions := models.NewVersionPair(release.Version, local)
	log.G(ctx).Infof("Latest %s version on GitHub: %s", app.Name, versions.Latest)
	if !release.PublishedAt.IsZero() {
		log.G(ctx).Debugf("Release %s published %s", release.Tag, humanize.Time(release.PublishedAt))
	}
	log.G(ctx).Infof("Currently installed %s version: %s", app.Name, versions.Local)

	result := &models.CheckResult{
		App:      app,
		Versions: versions,
		Release:  release,
		Outcome:  Decide(versions, force),
		Forced:   force,
		DryRun:   c.DryRun,
	}

	if result.Outcome == models.NoUpdateNeeded {
		log.G(ctx).Infof("No new version found. Your %s is up to date.", app.Name)
		return result, nil
	}

	if versions.Differs() {
		if versions.Direction() == "downgrade" {
			log.G(ctx).Warnf("Latest release v%s is older than installed v%s", versions.Latest, versions.Local)
		}
		log.G(ctx).Infof("New version found: v%s. Updating...", versions.Latest)
	} else {
		log.G(ctx).Infof("Forced update to v%s. Updating...", versions.Latest)
	}

	script := filepath.Join(c.ScriptDir, app.ScriptName())
	if c.DryRun {
		log.G(ctx).Infof("Dry run: would run %s %s", script, versions.Latest)
		return result, nil
	}

	process := c.Scripts.Run(ctx, script, versions.Latest)
	result.Process = &process

	if process.Success() {
		log.G(ctx).Infof("Update %s to v%s successful.", app.Name, versions.Latest)
		return result, nil
	}

	stderr := strings.TrimSpace(process.Stderr)
	log.G(ctx).Errorf("Update %s to v%s failed with return code %d.", app.Name, versions.Latest, process.ExitCode)
	log.G(ctx).Errorf("Error message: %s", stderr)
	if c.Notifier != nil {
		result.Notified = c.Notifier.Notify(ctx, FailureMessage(app.Name, versions.Latest, stderr))
	}
	return result, nil
}

// FailureMessage is the notification text for a failed update.
func FailureMessage(app, version, stderr string) string {
	return fmt.Sprintf("Failed to update %s to v%s. Error message: %s", app, version, stderr)
}
