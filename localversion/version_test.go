package localversion

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/pkg/errors"

	"github.com/gofish-bot/hostkeeper/models"
)

// fakeBinary writes a shell script answering --version with the given script body.
func fakeBinary(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "app")
	script := "#!/bin/sh\n" + body + "\n"
	if err := ioutil.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		regex   string
		want    string
		wantErr bool
	}{
		{
			name:  "gitea",
			body:  `echo "Gitea version 1.21.0 built with GNU Make 4.3, go1.21.4 : bindata, sqlite"`,
			regex: `Gitea version (\d+\.\d+\.\d+)`,
			want:  "1.21.0",
		},
		{
			name:  "beszel",
			body:  `echo "beszel version 0.9.1"`,
			regex: `beszel version (\d+\.\d+\.\d+)`,
			want:  "0.9.1",
		},
		{
			name:  "no capture group",
			body:  `echo "v2.0.1"`,
			regex: `v\d+\.\d+\.\d+`,
			want:  "2.0.1",
		},
		{
			name:  "nonzero exit with version",
			body:  "echo \"Gitea version 1.20.5\"\nexit 3",
			regex: `Gitea version (\d+\.\d+\.\d+)`,
			want:  "1.20.5",
		},
		{
			name:    "version on stderr only",
			body:    `echo "Gitea version 1.21.0" >&2`,
			regex:   `Gitea version (\d+\.\d+\.\d+)`,
			wantErr: true,
		},
		{
			name:    "no match",
			body:    `echo "unknown flag --version"`,
			regex:   `Gitea version (\d+\.\d+\.\d+)`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(context.Background(), fakeBinary(t, tt.body), tt.regex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var notFound *NotFoundError
				if !errors.As(err, &notFound) {
					t.Errorf("Read() error = %T, want *NotFoundError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadMissingBinary(t *testing.T) {
	_, err := Read(context.Background(), filepath.Join(t.TempDir(), "missing"), `(\d+)`)
	if err == nil {
		t.Fatal("Read() error = nil, want error")
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		t.Errorf("Read() error = %v, want a start failure", err)
	}
}

func TestReader_LocalVersion(t *testing.T) {
	app := models.AppSpec{
		Name:         "beszel",
		Binary:       fakeBinary(t, `echo "beszel version 0.10.2"`),
		VersionRegex: `beszel version (\d+\.\d+\.\d+)`,
	}
	got, err := Reader{}.LocalVersion(context.Background(), app)
	if err != nil {
		t.Fatalf("LocalVersion() error = %v", err)
	}
	if got != "0.10.2" {
		t.Errorf("LocalVersion() = %v, want 0.10.2", got)
	}
}

func TestExtract(t *testing.T) {
	re := regexp.MustCompile(`version (\d+\.\d+\.\d+)`)
	if got, ok := Extract(re, "app version 1.2.3\n"); !ok || got != "1.2.3" {
		t.Errorf("Extract() = %v, %v, want 1.2.3, true", got, ok)
	}
	if _, ok := Extract(re, "app 1.2.3"); ok {
		t.Errorf("Extract() ok = true, want false")
	}
}
