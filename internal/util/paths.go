package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// ConfigDir returns the scriptutils configuration directory.
// SCRIPTUTILS_HOME wins, then $XDG_CONFIG_HOME/scriptutils, then ~/.config/scriptutils.
func ConfigDir() string {
	if dir := os.Getenv("SCRIPTUTILS_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scriptutils")
	}
	return filepath.Join(HomeDir(), ".config", "scriptutils")
}

// LogPath returns the default location of the rotated debug log.
func LogPath() string {
	return filepath.Join(ConfigDir(), "logs", "scriptutils.log")
}

// ExpandPath expands a leading ~ to the home directory. Other paths are
// returned cleaned but otherwise unchanged.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
