package platform

import (
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "audiocontrol"

// FileExists returns true if path exists (file or directory)
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ExpandEnv expands ${VAR} / $VAR references and a leading ~/
// Unknown variables are left untouched so callers can detect them.
func ExpandEnv(s string) string {
	if s == "" {
		return s
	}

	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, strings.TrimPrefix(s, "~"))
		}
	}

	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}

// ConfigDir returns $XDG_CONFIG_HOME/audiocontrol (or the OS equivalent)
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName)
	}
	return "."
}

// StateDir returns $XDG_STATE_HOME/audiocontrol, falling back to ~/.local/state
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", appDirName)
	}
	return os.TempDir()
}
