// Package desktop makes desktop entries launch applications with extra
// command line flags by appending them to every Exec= line.
package desktop

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/models"
)

const (
	DefaultDir = "/usr/share/applications/"

	execPrefix = "Exec="
)

// PatchLine appends flags to an Exec= line that does not contain them yet.
func PatchLine(line, flags string) (string, bool) {
	if !strings.HasPrefix(line, execPrefix) || strings.Contains(line, flags) {
		return line, false
	}
	return strings.TrimRight(line, " \t") + " " + flags, true
}

// PatchLines patches every Exec= line and returns the new lines together
// with the number of lines that changed. Lines must not carry their line
// endings.
func PatchLines(lines []string, flags string) ([]string, int) {
	patched := make([]string, len(lines))
	changed := 0
	for i, line := range lines {
		var ok bool
		patched[i], ok = PatchLine(line, flags)
		if ok {
			changed++
		}
	}
	return patched, changed
}

// PatchContent patches a whole desktop entry, keeping each line's ending.
func PatchContent(content, flags string) (string, int) {
	pieces := strings.SplitAfter(content, "\n")
	lines := make([]string, len(pieces))
	endings := make([]string, len(pieces))
	for i, piece := range pieces {
		switch {
		case strings.HasSuffix(piece, "\r\n"):
			lines[i], endings[i] = strings.TrimSuffix(piece, "\r\n"), "\r\n"
		case strings.HasSuffix(piece, "\n"):
			lines[i], endings[i] = strings.TrimSuffix(piece, "\n"), "\n"
		default:
			lines[i] = piece
		}
	}

	patched, changed := PatchLines(lines, flags)
	if changed == 0 {
		return content, 0
	}

	var b strings.Builder
	for i := range patched {
		b.WriteString(patched[i])
		b.WriteString(endings[i])
	}
	return b.String(), changed
}

// PatchFile ensures every Exec= line of the desktop entry at path contains
// flags. A missing file is not an error. The file is only rewritten when a
// line changed; the rewrite truncates it in place and keeps its mode.
func PatchFile(ctx context.Context, path, flags string, dryRun bool) (models.PatchResult, error) {
	result := models.PatchResult{Path: path}

	content, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.G(ctx).Warnf("File %s does not exist, skipping", path)
			result.Status = models.PatchMissing
			return result, nil
		}
		return result, errors.Wrapf(err, "Reading %s", path)
	}

	patched, changed := PatchContent(string(content), flags)
	if changed == 0 {
		log.G(ctx).Infof("No updates needed for %s.", path)
		result.Status = models.PatchUnchanged
		return result, nil
	}
	result.Lines = changed

	if dryRun {
		log.G(ctx).Infof("Dry run: would update %d Exec= line(s) in %s.", changed, path)
		result.Status = models.PatchPatched
		return result, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return result, errors.Wrapf(err, "Opening %s for writing", path)
	}
	if _, err := f.WriteString(patched); err != nil {
		f.Close()
		return result, errors.Wrapf(err, "Writing %s", path)
	}
	if err := f.Close(); err != nil {
		return result, errors.Wrapf(err, "Closing %s", path)
	}

	log.G(ctx).Infof("Updated %s.", path)
	result.Status = models.PatchPatched
	return result, nil
}

type Patcher struct {
	Dir    string
	DryRun bool
}

// Run patches the desktop entry of every rule in order. A failing file is
// logged and does not stop the others; the first error is returned.
func (p *Patcher) Run(ctx context.Context, rules []models.DesktopFileUpdateRule) ([]models.PatchResult, error) {
	dir := p.Dir
	if dir == "" {
		dir = DefaultDir
	}

	var firstErr error
	results := make([]models.PatchResult, 0, len(rules))
	for _, rule := range rules {
		ctx := log.WithField(ctx, "app", rule.App)
		result, err := PatchFile(ctx, filepath.Join(dir, rule.FileName()), rule.Flags, p.DryRun)
		result.Rule = rule
		if err != nil {
			log.G(ctx).Errorf("Patching failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
		results = append(results, result)
	}
	return results, firstErr
}
