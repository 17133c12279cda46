// Package config loads and validates settings for the profit calculator.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir is where the config file is searched for when --config is unset.
const DefaultConfigDir = "~/.config/profit"

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// SearchPaths returns the directories scanned for config.yaml, in order.
func SearchPaths() []string {
	return []string{ExpandPath(DefaultConfigDir), "."}
}
