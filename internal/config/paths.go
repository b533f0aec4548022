package config

import (
	"os"
	"path/filepath"
)

// Dir resolves $AIWRITER_CONFIG_DIR > $XDG_CONFIG_HOME/aiwriter > ~/.config/aiwriter
func Dir() string {
	if dir := os.Getenv("AIWRITER_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aiwriter")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "aiwriter")
}

func File() string { return filepath.Join(Dir(), "settings.json") }
