// Package configloader provides configuration loading and resolution:
// project config discovery by upward search, XDG user config,
// environment variables and CLI flags, merged in precedence order.
package configloader

import (
	"os"
	"path/filepath"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// User is the user-level config path (e.g., ~/.config/po4a-man/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.po4aman.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// projectConfigFiles are the config file names we search for, in order
// of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".po4aman.yml",
	".po4aman.yaml",
	"po4aman.yml",
	"po4aman.yaml",
}

// discoverProject searches dir and its parents for a project config
// file.
func discoverProject(dir string) string {
	for {
		for _, name := range projectConfigFiles {
			candidate := filepath.Join(dir, name)
			if fileExists(candidate) {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// discoverUser returns the XDG user config path if it exists.
func discoverUser() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	candidate := filepath.Join(base, "po4a-man", "config.yaml")
	if fileExists(candidate) {
		return candidate
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
