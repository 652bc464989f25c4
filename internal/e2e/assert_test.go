package e2e

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestAssertHelpers(t *testing.T) {
	r := &Result{Stdout: "ok", Err: nil, ExitCode: 0}

	AssertSuccess(t, r)
	AssertOutputEquals(t, r, "ok")
	AssertOutputOmits(t, r, "Overwriting")
}

func TestAssertTaskFailed(t *testing.T) {
	errBoom := errors.New("boom")
	r := &Result{
		Stdout:   "∙ Copy file\n  ✕ It went boom\n\n",
		Err:      fmt.Errorf("copy: %w", errBoom),
		ExitCode: 1,
	}

	AssertTaskFailed(t, r, errBoom, "It went boom")
	AssertErrorContains(t, r, "copy: boom")
}

func TestAssertDiffShown(t *testing.T) {
	r := &Result{Stdout: "  --- a\n  +++ b\n  @@ -1 +1 @@\n  -alpha\n  +bravo\n"}

	AssertDiffShown(t, r, "alpha", "bravo")
}

func TestAssertFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	AssertFileEquals(t, path, "content")
	AssertNoFile(t, filepath.Join(dir, "missing.txt"))
}
