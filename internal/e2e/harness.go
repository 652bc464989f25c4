// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It runs the real CLI entry point against an isolated working directory,
// feeding stdin and capturing stdout through pipes.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/klauern/scriptutils/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness provides a test harness for running E2E CLI tests.
// It manages environment isolation, temp directories, and output capture.
type Harness struct {
	t       *testing.T
	homeDir string
	workDir string
}

// NewHarness creates a harness with an isolated SCRIPTUTILS_HOME and makes a
// fresh temp directory the working directory for the rest of the test.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		t:       t,
		homeDir: t.TempDir(),
		workDir: t.TempDir(),
	}
	t.Setenv("SCRIPTUTILS_HOME", h.homeDir)
	t.Chdir(h.workDir)

	return h
}

// HomeDir returns the isolated config directory for this harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// WorkDir returns the working directory commands run in.
func (h *Harness) WorkDir() string {
	return h.workDir
}

// Run executes a CLI command with empty stdin and captures the output.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()
	return h.RunWithStdin("", args...)
}

// RunWithStdin executes a CLI command with stdin input and captures output.
// This is useful for testing commands that ask before overwriting.
func (h *Harness) RunWithStdin(stdin string, args ...string) *Result {
	h.t.Helper()

	// Prepend "scriptutils" as the program name if not provided
	if len(args) == 0 || args[0] != "scriptutils" {
		args = append([]string{"scriptutils"}, args...)
	}

	oldStdin := os.Stdin
	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdin pipe: %v", err)
	}
	go func() {
		defer func() { _ = stdinW.Close() }()
		_, _ = stdinW.WriteString(stdin)
	}()
	os.Stdin = stdinR

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Drain stdout while the command runs so large output cannot fill the pipe.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	cmdErr := cli.Run(context.Background(), args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdin = oldStdin
	os.Stdout = oldStdout
	_ = stdinR.Close()

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}
