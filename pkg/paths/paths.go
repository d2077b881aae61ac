package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/homebuild/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for homebuild
	EnvConfigDir = "HOMEBUILD_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for homebuild
	EnvStateDir = "HOMEBUILD_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for homebuild-specific files
	AppDirName = "homebuild"

	// SettingsFileName is the name of the settings file inside ConfigDir
	SettingsFileName = "settings.toml"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "homebuild.log"

	// DefaultManifest is the manifest loaded when none is given
	DefaultManifest = "home.toml"
)

// Expand replaces a leading ~ with the home directory and expands
// environment variables. ~user forms are left untouched.
func Expand(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		if len(path) == 1 {
			return homeDir(path)
		}
		if path[1] == '/' || path[1] == filepath.Separator {
			home := homeDir("")
			if home == "" {
				return path
			}
			return filepath.Join(home, os.ExpandEnv(path[2:]))
		}
		return path
	}

	return os.ExpandEnv(path)
}

// Abs expands path and makes it absolute
func Abs(path string) (string, error) {
	abs, err := filepath.Abs(Expand(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return abs, nil
}

// ConfigDir returns the directory holding the settings file
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return Expand(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return Expand(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// SettingsFile returns the default settings file location
func SettingsFile() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// LogFile returns the log file location
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// InPath reports whether dir is one of the entries of $PATH
func InPath(dir string) bool {
	want := filepath.Clean(Expand(dir))
	for _, entry := range filepath.SplitList(os.Getenv("PATH")) {
		if entry == "" {
			continue
		}
		if filepath.Clean(Expand(entry)) == want {
			return true
		}
	}
	return false
}

func homeDir(fallback string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	if home == "" {
		return fallback
	}
	return strings.TrimRight(home, string(filepath.Separator))
}
