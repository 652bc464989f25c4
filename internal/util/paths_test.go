package util

import (
	"path/filepath"
	"testing"
)

func TestHomeDir(t *testing.T) {
	home := HomeDir()
	if home == "" {
		t.Error("HomeDir() returned empty string")
	}

	// Verify it's an absolute path
	if !filepath.IsAbs(home) {
		t.Errorf("HomeDir() returned relative path: %s", home)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("explicit home", func(t *testing.T) {
		t.Setenv("SCRIPTUTILS_HOME", "/custom/home")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		AssertEqual(t, ConfigDir(), "/custom/home")
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("SCRIPTUTILS_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		AssertEqual(t, ConfigDir(), filepath.Join("/xdg", "scriptutils"))
	})

	t.Run("fallback", func(t *testing.T) {
		t.Setenv("SCRIPTUTILS_HOME", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		AssertEqual(t, ConfigDir(), filepath.Join(HomeDir(), ".config", "scriptutils"))
	})
}

func TestLogPath(t *testing.T) {
	t.Setenv("SCRIPTUTILS_HOME", "/custom/home")
	AssertEqual(t, LogPath(), filepath.Join("/custom/home", "logs", "scriptutils.log"))
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", HomeDir()},
		{"~/scripts", filepath.Join(HomeDir(), "scripts")},
		{"./a/../b", "b"},
		{"/abs/path/", "/abs/path"},
		{"~other", "~other"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			AssertEqual(t, ExpandPath(tt.in), tt.want)
		})
	}
}
