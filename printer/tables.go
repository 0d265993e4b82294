package printer

import (
	"fmt"
	"io"

	"github.com/gofish-bot/hostkeeper/models"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

func newTable(w io.Writer, columns ...interface{}) table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New(columns...).WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	return tbl
}

// Releases prints one row per release check.
func Releases(w io.Writer, results []*models.CheckResult) {
	tbl := newTable(w, "App", "Installed", "Latest", "Direction", "Status")
	for _, r := range results {
		tbl.AddRow(r.App.Name, r.Versions.Local, r.Versions.Latest, r.Versions.Direction(), ReleaseStatus(r))
	}
	tbl.Print()
}

func ReleaseStatus(r *models.CheckResult) string {
	status := ""
	switch {
	case r.Outcome == models.NoUpdateNeeded:
		return "Up to date"
	case r.DryRun:
		status = "Would update"
	case r.Process == nil:
		status = "Update pending"
	case r.Process.Success():
		status = "Updated"
	default:
		status = fmt.Sprintf("Failed (exit %d)", r.Process.ExitCode)
		if r.Notified {
			status += ", notified"
		}
	}
	if r.Forced && !r.Versions.Differs() {
		status += " (forced)"
	}
	return status
}

// DesktopFiles prints one row per desktop entry.
func DesktopFiles(w io.Writer, results []models.PatchResult) {
	tbl := newTable(w, "App", "Mode", "File", "Status")
	for _, r := range results {
		status := string(r.Status)
		if r.Status == models.PatchPatched {
			status = fmt.Sprintf("%s (%d lines)", r.Status, r.Lines)
		}
		tbl.AddRow(r.Rule.App, r.Rule.Mode, r.Path, status)
	}
	tbl.Print()
}
