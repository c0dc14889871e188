// Package testutil provides utilities for testing.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// Context returns a context that is canceled when the test ends.
func Context(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return ctx
}

// WriteFile writes content to name inside a per-test temp directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// RunnerFiles are the empty files a GitHub Actions runner provides for
// step outputs and the job summary.
type RunnerFiles struct {
	Output  string
	Summary string
}

// NewRunnerFiles creates empty output and summary files.
func NewRunnerFiles(t *testing.T) RunnerFiles {
	t.Helper()

	return RunnerFiles{
		Output:  WriteFile(t, "output", ""),
		Summary: WriteFile(t, "step_summary", ""),
	}
}

// Env returns the variables that point a runner at the files.
func (f RunnerFiles) Env() map[string]string {
	return map[string]string{
		"GITHUB_OUTPUT":       f.Output,
		"GITHUB_STEP_SUMMARY": f.Summary,
	}
}
