package e2e

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
)

// AssertSuccess fails the test if the command returned an error. The task
// lines printed so far are included to show which step failed.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Fatalf("expected success, got error: %v\ntask output:\n%s", r.Err, r.Stdout)
	}
}

// AssertFailed fails the test unless the command exited with status 1 and,
// when target is non-nil, its error matches target.
func AssertFailed(t *testing.T, r *Result, target error) {
	t.Helper()
	if r.Success() {
		t.Fatalf("expected failure, but command succeeded\ntask output:\n%s", r.Stdout)
	}
	if r.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", r.ExitCode)
	}
	if target != nil && !errors.Is(r.Err, target) {
		t.Errorf("error = %v, want it to match %v", r.Err, target)
	}
}

// AssertTaskFailed checks both sides of a failed task: the returned error
// wraps target and the console showed the failure line.
func AssertTaskFailed(t *testing.T, r *Result, target error, failLine string) {
	t.Helper()
	AssertFailed(t, r, target)
	if !strings.Contains(r.Stdout, failLine) {
		t.Errorf("expected failure line %q\ntask output:\n%s", failLine, r.Stdout)
	}
}

// AssertErrorContains fails the test unless the command failed with an
// error mentioning substr.
func AssertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	AssertFailed(t, r, nil)
	if r.Err != nil && !strings.Contains(r.Err.Error(), substr) {
		t.Errorf("expected error to contain %q\ngot: %v", substr, r.Err)
	}
}

// AssertOutputContains fails the test if stdout is missing any of substrs.
func AssertOutputContains(t *testing.T, r *Result, substrs ...string) {
	t.Helper()
	for _, substr := range substrs {
		if !strings.Contains(r.Stdout, substr) {
			t.Errorf("expected output to contain %q\ngot: %s", substr, r.Stdout)
		}
	}
}

// AssertOutputOmits fails the test if stdout contains substr.
func AssertOutputOmits(t *testing.T, r *Result, substr string) {
	t.Helper()
	if strings.Contains(r.Stdout, substr) {
		t.Errorf("expected output to omit %q\ngot: %s", substr, r.Stdout)
	}
}

// AssertOutputEquals fails the test if stdout doesn't match exactly.
func AssertOutputEquals(t *testing.T, r *Result, expected string) {
	t.Helper()
	if r.Stdout != expected {
		t.Errorf("output mismatch\nexpected: %q\ngot: %q", expected, r.Stdout)
	}
}

// AssertDiffShown checks that stdout carries a diff line removing removed
// (from the source side) and one adding added (from the destination side).
func AssertDiffShown(t *testing.T, r *Result, removed, added string) {
	t.Helper()
	var sawRemoved, sawAdded bool
	for _, line := range strings.Split(r.Stdout, "\n") {
		// Diffs shown during a copy are indented under the task.
		switch strings.TrimLeft(line, " ") {
		case "-" + removed:
			sawRemoved = true
		case "+" + added:
			sawAdded = true
		}
	}
	if !sawRemoved || !sawAdded {
		t.Errorf("expected diff lines %q and %q\ngot: %s", "-"+removed, "+"+added, r.Stdout)
	}
}

// AssertFileEquals fails the test if the file content doesn't match exactly.
// Use it to show that a refused copy or patch left a file alone.
func AssertFileEquals(t *testing.T, path, expected string) {
	t.Helper()
	// #nosec G304 - path is provided by test code
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if string(data) != expected {
		t.Errorf("content mismatch for %s\nexpected: %q\ngot: %q", path, expected, string(data))
	}
}

// AssertNoFile fails the test if anything exists at path.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected nothing at %s, stat err = %v", path, err)
	}
}
