package config

import (
	"os"
	"path/filepath"
)

// defaultStateRootDir returns "<home>/.local/share/termcoord/terminals",
// the default for StateRoot.Dir (spec.md §6's "<root>/terminals/").
func defaultStateRootDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "termcoord", "terminals")
	}
	return filepath.Join(home, ".local", "share", "termcoord", "terminals")
}

// defaultConfigPath returns "<home>/.config/termcoord/config.yaml".
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "termcoord", "config.yaml")
}
