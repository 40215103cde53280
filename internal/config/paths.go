package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite cache database
	Config   string // Config file
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "couchpilot.db"),
		Config:   filepath.Join(cfg.BaseDir, "config.yaml"),
		Logs:     filepath.Join(cfg.BaseDir, "logs"),
	}
}

// DefaultBaseDir returns the default base directory (~/.couchpilot).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".couchpilot"
	}
	return filepath.Join(home, ".couchpilot")
}
