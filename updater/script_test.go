package updater

import (
	"context"
	"path/filepath"
	"testing"
)

func TestExecRunner_Run(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "success", body: `echo "updated to $1"`, wantCode: 0, wantStdout: "updated to 1.22.0\n"},
		{name: "failure", body: `echo "disk full" >&2; exit 1`, wantCode: 1, wantStderr: "disk full\n"},
		{name: "other exit code", body: `exit 42`, wantCode: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := filepath.Join(dir, tt.name+".sh")
			writeScript(t, script, tt.body)

			got := ExecRunner{}.Run(context.Background(), script, "1.22.0")
			if got.ExitCode != tt.wantCode {
				t.Errorf("ExecRunner.Run().ExitCode = %v, want %v", got.ExitCode, tt.wantCode)
			}
			if got.Stdout != tt.wantStdout {
				t.Errorf("ExecRunner.Run().Stdout = %q, want %q", got.Stdout, tt.wantStdout)
			}
			if got.Stderr != tt.wantStderr {
				t.Errorf("ExecRunner.Run().Stderr = %q, want %q", got.Stderr, tt.wantStderr)
			}
			if got.Success() != (tt.wantCode == 0) {
				t.Errorf("ExecRunner.Run().Success() = %v", got.Success())
			}
		})
	}
}

func TestExecRunner_RunMissingScript(t *testing.T) {
	got := ExecRunner{}.Run(context.Background(), filepath.Join(t.TempDir(), "update_gitea.sh"), "1.22.0")
	if got.ExitCode != -1 {
		t.Errorf("ExecRunner.Run().ExitCode = %v, want -1", got.ExitCode)
	}
	if got.Stderr == "" {
		t.Errorf("ExecRunner.Run().Stderr is empty, want the start error")
	}
}

func TestDefaultScriptDir(t *testing.T) {
	dir, err := DefaultScriptDir()
	if err != nil {
		t.Fatalf("DefaultScriptDir() error = %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("DefaultScriptDir() = %v, want an absolute path", dir)
	}
}
