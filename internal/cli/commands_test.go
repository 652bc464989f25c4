package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/patch"
	"github.com/klauern/scriptutils/internal/sync"
	"github.com/klauern/scriptutils/internal/util"
)

func TestCopyCommand(t *testing.T) {
	tests := map[string]struct {
		args     []string
		stdin    string
		dest     string
		wantErr  error
		wantDest string
		wantOut  string
	}{
		"fresh destination": {
			wantDest: "alpha",
			wantOut:  "Completed",
		},
		"existing destination fails by default": {
			dest:     "bravo",
			wantErr:  sync.ErrDestinationExists,
			wantDest: "bravo",
			wantOut:  "Copy failed because dest path exists",
		},
		"skip": {
			args:     []string{"--exists", "skip"},
			dest:     "bravo",
			wantDest: "bravo",
			wantOut:  "Skipped it",
		},
		"overwrite": {
			args:     []string{"-e", "overwrite"},
			dest:     "bravo",
			wantDest: "alpha",
			wantOut:  "Overwriting it",
		},
		"ask answered y": {
			args:     []string{"--exists", "ask"},
			stdin:    "y\n",
			dest:     "bravo",
			wantDest: "alpha",
			wantOut:  "Overwrite the existing file? [y/n]",
		},
		"ask answered n": {
			args:     []string{"--exists", "ask"},
			stdin:    "n\n",
			dest:     "bravo",
			wantDest: "bravo",
			wantOut:  "Skipping",
		},
		"ask answered q": {
			args:     []string{"--exists", "ask"},
			stdin:    "q\n",
			dest:     "bravo",
			wantErr:  sync.ErrInvalidAnswer,
			wantDest: "bravo",
			wantOut:  "Did not answer y or n",
		},
		"ask with identical files": {
			args:     []string{"--exists", "ask"},
			dest:     "alpha",
			wantDest: "alpha",
			wantOut:  "match so leave it alone",
		},
		"invalid decision": {
			args:     []string{"--exists", "merge"},
			dest:     "bravo",
			wantErr:  sync.ErrInvalidDecision,
			wantDest: "bravo",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src.txt")
			dest := filepath.Join(dir, "out", "dest.txt")
			util.WriteFile(t, src, "alpha")
			if tt.dest != "" {
				util.WriteFile(t, dest, tt.dest)
			}

			args := append([]string{"copy"}, tt.args...)
			out, _, err := runApp(t, tt.stdin, append(args, src, dest)...)

			if tt.wantErr != nil {
				util.AssertErrorIs(t, err, tt.wantErr)
			} else {
				util.AssertNoError(t, err)
			}
			util.AssertEqual(t, util.ReadFile(t, dest), tt.wantDest)
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output = %q, want substring %q", out, tt.wantOut)
			}
		})
	}
}

func TestCopyCommand_ArgumentCount(t *testing.T) {
	_, _, err := runApp(t, "", "copy", "only-one")
	if err == nil || !strings.Contains(err.Error(), "requires exactly 2 argument(s)") {
		t.Errorf("expected argument error, got %v", err)
	}
}

func TestCopyDirCommand(t *testing.T) {
	dir := t.TempDir()
	util.WriteFile(t, filepath.Join(dir, "src", "a.txt"), "alpha")
	util.WriteFile(t, filepath.Join(dir, "src", "nested", "b.txt"), "bravo")

	_, _, err := runApp(t, "", "copy-dir", filepath.Join(dir, "src"), filepath.Join(dir, "dest"))
	util.AssertNoError(t, err)
	util.AssertEqual(t, util.ReadFile(t, filepath.Join(dir, "dest", "nested", "b.txt")), "bravo")

	_, _, err = runApp(t, "", "copy-dir", filepath.Join(dir, "src"), filepath.Join(dir, "dest"))
	util.AssertErrorIs(t, err, sync.ErrDestinationTreeConflict)
}

func TestReplaceCommand(t *testing.T) {
	const text = "lorem ipsum dolar\nsit amet\nlorem ipsum dolar\n"

	tests := map[string]struct {
		args     []string
		wantErr  error
		wantMsg  string
		wantDest string
	}{
		"literal with count": {
			args:     []string{"--find", "ipsum", "--replace", "IPSUM", "--count", "2"},
			wantDest: "lorem IPSUM dolar\nsit amet\nlorem IPSUM dolar\n",
		},
		"regex upper": {
			args:     []string{"--regex", `ips(?=um)`, "--case", "upper", "--count", "2"},
			wantDest: "lorem IPSum dolar\nsit amet\nlorem IPSum dolar\n",
		},
		"default count of one": {
			args:     []string{"--find", "sit", "--replace", "sat"},
			wantDest: "lorem ipsum dolar\nsat amet\nlorem ipsum dolar\n",
		},
		"any count": {
			args:     []string{"--find", "lorem", "--replace", "", "--any-count"},
			wantDest: " ipsum dolar\nsit amet\n ipsum dolar\n",
		},
		"count mismatch": {
			args:    []string{"--find", "ipsum", "--replace", "x"},
			wantErr: patch.ErrReplacementCountMismatch,
		},
		"invalid regex": {
			args:    []string{"--regex", "(unclosed", "--replace", "x"},
			wantErr: patch.ErrInvalidPattern,
		},
		"missing pattern": {
			args:    []string{"--replace", "x"},
			wantMsg: "one of --find or --regex is required",
		},
		"both patterns": {
			args:    []string{"--find", "a", "--regex", "a"},
			wantMsg: "cannot be used together",
		},
		"case and replace": {
			args:    []string{"--find", "a", "--case", "upper", "--replace", "b"},
			wantMsg: "cannot be used together",
		},
		"unknown case": {
			args:    []string{"--find", "sit", "--case", "sponge"},
			wantMsg: "unknown case",
		},
		"negative count": {
			args:    []string{"--find", "ipsum", "--replace", "x", "--count=-3"},
			wantErr: patch.ErrInvalidCount,
		},
		"count and any count": {
			args:    []string{"--find", "a", "--count", "2", "--any-count"},
			wantMsg: "cannot be used together",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src.txt")
			dest := filepath.Join(dir, "dest.txt")
			util.WriteFile(t, src, text)

			args := append([]string{"replace"}, tt.args...)
			_, _, err := runApp(t, "", append(args, src, dest)...)

			switch {
			case tt.wantErr != nil:
				util.AssertErrorIs(t, err, tt.wantErr)
			case tt.wantMsg != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
					t.Fatalf("expected error containing %q, got %v", tt.wantMsg, err)
				}
			default:
				util.AssertNoError(t, err)
				util.AssertEqual(t, util.ReadFile(t, dest), tt.wantDest)
				return
			}

			if _, statErr := os.Stat(dest); !errors.Is(statErr, os.ErrNotExist) {
				t.Errorf("dest should not exist after a failed replace, stat err = %v", statErr)
			}
		})
	}
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	c := filepath.Join(dir, "c.txt")
	util.WriteFile(t, a, "alpha\nbravo\n")
	util.WriteFile(t, b, "alpha\ncharlie\n")
	util.WriteFile(t, c, "alpha\nbravo\n")

	out, _, err := runApp(t, "", "diff", a, b)
	util.AssertNoError(t, err)
	for _, want := range []string{"-bravo", "+charlie", "+1/-1 lines"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output = %q, want substring %q", out, want)
		}
	}

	out, _, err = runApp(t, "", "diff", a, c)
	util.AssertNoError(t, err)
	if !strings.Contains(out, "Files are identical") {
		t.Errorf("diff output = %q, want identical message", out)
	}

	_, _, err = runApp(t, "", "diff", a, filepath.Join(dir, "missing.txt"))
	util.AssertErrorIs(t, err, os.ErrNotExist)
}

func TestIsEmptyCommand(t *testing.T) {
	dir := t.TempDir()
	util.WriteFile(t, filepath.Join(dir, "full", "a.txt"), "a")
	if err := os.Mkdir(filepath.Join(dir, "empty"), 0o750); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	tests := map[string]string{
		"missing": "true",
		"empty":   "true",
		"full":    "false",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			out, _, err := runApp(t, "", "is-empty", filepath.Join(dir, name))
			util.AssertNoError(t, err)
			util.AssertEqual(t, strings.TrimSpace(out), want)
		})
	}
}

func TestEnsureEmptyCommand(t *testing.T) {
	dir := t.TempDir()
	util.WriteFile(t, filepath.Join(dir, "full", "a.txt"), "a")

	_, _, err := runApp(t, "", "ensure-empty", filepath.Join(dir, "missing"))
	util.AssertNoError(t, err)

	_, _, err = runApp(t, "", "ensure-empty", filepath.Join(dir, "full"))
	util.AssertErrorIs(t, err, fsutil.ErrCheckFailed)
}

func TestEmptyDirCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	util.WriteFile(t, filepath.Join("build", "a.txt"), "a")
	util.WriteFile(t, filepath.Join("build", "nested", "b.txt"), "b")

	_, _, err := runApp(t, "", "empty-dir", "build")
	util.AssertNoError(t, err)

	entries, err := os.ReadDir("build")
	util.AssertNoError(t, err)
	util.AssertEqual(t, len(entries), 0)

	for _, unsafe := range []string{"~", "/", ".", "./"} {
		_, _, err := runApp(t, "", "empty-dir", unsafe)
		util.AssertErrorIs(t, err, fsutil.ErrUnsafePath)
	}
}

func TestRemoveCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	util.WriteFile(t, file, "a")

	_, _, err := runApp(t, "", "remove", file)
	util.AssertNoError(t, err)
	if _, err := os.Stat(file); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still exists: %v", err)
	}

	out, _, err := runApp(t, "", "remove", file)
	util.AssertNoError(t, err)
	if !strings.Contains(out, "File does not exist") {
		t.Errorf("output = %q", out)
	}

	_, _, err = runApp(t, "", "remove", dir)
	util.AssertErrorIs(t, err, fsutil.ErrNotAFile)
}

func TestConfigCommands(t *testing.T) {
	out, _, err := runApp(t, "", "config")
	util.AssertNoError(t, err)
	if !strings.Contains(out, "default_decision: fail") {
		t.Errorf("config output = %q", out)
	}

	out, _, err = runApp(t, "", "config", "show", "-f", "toml")
	util.AssertNoError(t, err)
	if !strings.Contains(out, `default_decision = "fail"`) {
		t.Errorf("toml output = %q", out)
	}

	_, _, err = runApp(t, "", "config", "show", "--format", "json")
	if err == nil {
		t.Error("expected an error for an unsupported format")
	}

	out, _, err = runApp(t, "", "config", "path")
	util.AssertNoError(t, err)
	if !strings.Contains(out, "Configuration paths") {
		t.Errorf("path output = %q", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "scriptutils.yaml")

	_, _, err := runApp(t, "", "config", "init", path)
	util.AssertNoError(t, err)
	if got := util.ReadFile(t, path); !strings.Contains(got, "default_decision: fail") {
		t.Errorf("written config = %q", got)
	}

	_, _, err = runApp(t, "", "config", "init", path)
	util.AssertErrorIs(t, err, fsutil.ErrDestinationExists)
}
