// Package paths resolves where registrar looks for configuration and writes its
// debug output.
package paths

import (
	"os"
	"path/filepath"
)

// AppName is used for directory names under the user's home.
const AppName = "registrar"

// LocalConfigPath is the project-local config file, relative to the working directory.
func LocalConfigPath() string {
	return filepath.Join("."+AppName, "config.yaml")
}

// UserConfigDir returns ~/.config/registrar, or "" if the home directory is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultTracesFilePath returns ~/.config/registrar/traces/traces.jsonl, or "" if the
// home directory is unknown.
func DefaultTracesFilePath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// DefaultLogPath is the debug log file written in the working directory.
func DefaultLogPath() string {
	return "debug.log"
}

// ResolveConfigFile picks the config file to load.
//
// Lookup order:
//  1. explicit (from --config), returned even if it does not exist yet
//  2. .registrar/config.yaml in the working directory
//  3. ~/.config/registrar/config.yaml
//
// found reports whether the returned path exists. When nothing exists the local
// path is returned so a default config can be written there.
func ResolveConfigFile(explicit string) (path string, found bool) {
	if explicit != "" {
		return explicit, fileExists(explicit)
	}

	local := LocalConfigPath()
	if fileExists(local) {
		return local, true
	}

	if dir := UserConfigDir(); dir != "" {
		user := filepath.Join(dir, "config.yaml")
		if fileExists(user) {
			return user, true
		}
	}

	return local, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
