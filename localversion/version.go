package localversion

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/pkg/errors"

	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/models"
)

// NotFoundError means the version output did not match the expected pattern.
type NotFoundError struct {
	Binary string
	Regex  string
	Output string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not determine local version of %s: output does not match %q", e.Binary, e.Regex)
}

type Reader struct{}

// LocalVersion reads the installed version of the app.
func (Reader) LocalVersion(ctx context.Context, app models.AppSpec) (string, error) {
	return Read(ctx, app.Binary, app.VersionRegex)
}

// Read runs "<binary> --version" and extracts the version from its stdout.
// The first capture group is used when the regex has one, the whole match
// otherwise. The exit code of the binary is ignored.
func Read(ctx context.Context, binary, regex string) (string, error) {
	re, err := regexp.Compile(regex)
	if err != nil {
		return "", errors.Wrapf(err, "Bad version regex for %s", binary)
	}

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "--version")
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return "", errors.Wrapf(err, "Running %s --version", binary)
		}
		log.G(ctx).Debugf("%s --version exited with: %v", binary, err)
	}

	version, ok := Extract(re, stdout.String())
	if !ok {
		return "", &NotFoundError{Binary: binary, Regex: regex, Output: stdout.String()}
	}
	return models.NormalizeVersion(version), nil
}

// Extract applies re to output.
func Extract(re *regexp.Regexp, output string) (string, bool) {
	match := re.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}
	if len(match) > 1 {
		return match[1], true
	}
	return match[0], true
}
