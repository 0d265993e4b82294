package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/blang/semver"
)

// AppSpec describes one application the release checker knows how to update.
type AppSpec struct {
	Name         string `yaml:"name"`
	Owner        string `yaml:"owner"`
	Repo         string `yaml:"repo"`
	Binary       string `yaml:"binary"`
	VersionRegex string `yaml:"regex"`
	Script       string `yaml:"script"`
}

// ReleaseAPIURL is the GitHub endpoint holding the latest release of the app.
func (a AppSpec) ReleaseAPIURL() string {
	return fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", a.Owner, a.Repo)
}

// ScriptName is the update script file name, update_<name>.sh unless set.
func (a AppSpec) ScriptName() string {
	if a.Script != "" {
		return a.Script
	}
	return "update_" + a.Name + ".sh"
}

// NormalizeVersion strips a single leading "v".
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(version, "v")
}

type VersionPair struct {
	Latest string
	Local  string
}

// NewVersionPair builds a pair out of raw version strings.
func NewVersionPair(latest, local string) VersionPair {
	return VersionPair{
		Latest: NormalizeVersion(latest),
		Local:  NormalizeVersion(local),
	}
}

// Differs compares the versions as opaque strings.
func (p VersionPair) Differs() bool {
	return p.Latest != p.Local
}

// Direction describes what moving from Local to Latest means. It is only
// informational and never decides whether an update happens.
func (p VersionPair) Direction() string {
	latest, err := semver.Make(p.Latest)
	if err != nil {
		return "unknown"
	}
	local, err := semver.Make(p.Local)
	if err != nil {
		return "unknown"
	}
	switch {
	case latest.GT(local):
		return "upgrade"
	case latest.LT(local):
		return "downgrade"
	default:
		return "reinstall"
	}
}

type Release struct {
	Tag         string
	Version     string
	Name        string
	HTMLURL     string
	PublishedAt time.Time
}

type UpdateOutcome int

const (
	NoUpdateNeeded UpdateOutcome = iota
	UpdateTriggered
)

func (o UpdateOutcome) String() string {
	switch o {
	case UpdateTriggered:
		return "update triggered"
	default:
		return "no update needed"
	}
}

// ProcessResult is what an update script left behind.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

func (r ProcessResult) Success() bool {
	return r.ExitCode == 0
}

// CheckResult summarises one release check.
type CheckResult struct {
	App      AppSpec
	Versions VersionPair
	Release  *Release
	Outcome  UpdateOutcome
	Forced   bool
	DryRun   bool
	Process  *ProcessResult
	Notified bool
}

// DesktopFileUpdateRule ties a desktop entry to the flags its Exec= lines need.
type DesktopFileUpdateRule struct {
	App   string `yaml:"app"`
	Mode  string `yaml:"mode"`
	Flags string `yaml:"-"`
}

// FileName is the desktop entry file name for the rule.
func (r DesktopFileUpdateRule) FileName() string {
	return r.App + ".desktop"
}

type PatchStatus string

const (
	PatchPatched   PatchStatus = "patched"
	PatchUnchanged PatchStatus = "unchanged"
	PatchMissing   PatchStatus = "missing"
)

// PatchResult reports what happened to one desktop entry.
type PatchResult struct {
	Rule   DesktopFileUpdateRule
	Path   string
	Status PatchStatus
	// Lines is the number of Exec= lines that received the flags.
	Lines int
}
