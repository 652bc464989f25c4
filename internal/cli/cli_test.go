package cli

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/util"
)

// runApp runs the CLI with stdin and returns what it wrote to stdout and stderr.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		in:     strings.NewReader(stdin),
		out:    &out,
		errOut: &errOut,
		fs:     fsutil.OS(),
	}
	err := a.command().Run(context.Background(), append([]string{"scriptutils"}, args...))
	return out.String(), errOut.String(), err
}

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runApp(t, "", "version")
	util.AssertNoError(t, err)

	for _, want := range []string{"scriptutils version", "commit:", "built:", "go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want substring %q", out, want)
		}
	}
}

func TestConfigureLogging(t *testing.T) {
	tests := map[string]struct {
		args      []string
		env       map[string]string
		wantLevel slog.Level
	}{
		"no flags uses warn level": {
			args:      []string{"version"},
			wantLevel: slog.LevelWarn,
		},
		"verbose flag enables info level": {
			args:      []string{"--verbose", "version"},
			wantLevel: slog.LevelInfo,
		},
		"debug flag enables debug level": {
			args:      []string{"--debug", "version"},
			wantLevel: slog.LevelDebug,
		},
		"config level is used": {
			args:      []string{"version"},
			env:       map[string]string{"SCRIPTUTILS_LOG_LEVEL": "error"},
			wantLevel: slog.LevelError,
		},
		"verbose does not raise a lower config level": {
			args:      []string{"--verbose", "version"},
			env:       map[string]string{"SCRIPTUTILS_LOG_LEVEL": "debug"},
			wantLevel: slog.LevelDebug,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			logging.SetDefault(logging.New(logging.DefaultOptions()))

			_, _, err := runApp(t, "", tt.args...)
			util.AssertNoError(t, err)

			ctx := context.Background()
			logger := logging.Default()
			if !logger.Enabled(ctx, tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > slog.LevelDebug && logger.Enabled(ctx, tt.wantLevel-1) {
				t.Errorf("expected level below %v to be disabled", tt.wantLevel)
			}
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	t.Setenv("SCRIPTUTILS_LOG_LEVEL", "loud")
	_, _, err := runApp(t, "", "version")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("expected invalid log level error, got %v", err)
	}
}

func TestLogFileFromConfig(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	t.Setenv("SCRIPTUTILS_LOG_FILE", logPath)

	_, _, err := runApp(t, "", "--debug", "version")
	util.AssertNoError(t, err)

	if got := util.ReadFile(t, logPath); !strings.Contains(got, "logging configured") {
		t.Errorf("log file = %q, want the debug record", got)
	}
	logging.SetDefault(logging.New(logging.DefaultOptions()))
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "scriptutils.toml")
	util.WriteFile(t, configPath, "[copy]\ndefault_decision = \"skip\"\n")

	src := filepath.Join(dir, "src.txt")
	dest := filepath.Join(dir, "dest.txt")
	util.WriteFile(t, src, "alpha")
	util.WriteFile(t, dest, "bravo")

	out, _, err := runApp(t, "", "--config", configPath, "copy", src, dest)
	util.AssertNoError(t, err)

	util.AssertEqual(t, util.ReadFile(t, dest), "bravo")
	if !strings.Contains(out, "Skipped it") {
		t.Errorf("output = %q, want skip message", out)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	_, _, err := runApp(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("expected config load error, got %v", err)
	}
}
