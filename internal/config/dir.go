// Package config loads harvest-mcp credentials and settings from the
// config file and the environment.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the harvest-mcp configuration directory.
//
// Resolution:
//   - $HARVEST_MCP_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/harvest-mcp if set (respects XDG on any platform)
//   - %AppData%/harvest-mcp on Windows
//   - ~/.config/harvest-mcp on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("HARVEST_MCP_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "harvest-mcp")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "harvest-mcp")
		}
	}

	// macOS and Linux: ~/.config/harvest-mcp
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "harvest-mcp")
}
