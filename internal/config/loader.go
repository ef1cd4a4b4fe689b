package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under the XDG config home.
const AppName = "flowmap"

var defaultConfigNames = []string{"config.yaml", "config.yml", "config.json"}

// ConfigDir returns $XDG_CONFIG_HOME/flowmap.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for config.yaml, config.yml or config.json in ConfigDir()
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	dir := ConfigDir()
	for _, name := range defaultConfigNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
