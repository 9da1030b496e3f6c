package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds all resolved lablink state file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	Home        string // ~/.lablink or LABLINK_HOME
	ConfigPath  string // config.yaml or LABLINK_CONFIG_PATH
	LinkDBPath  string // links.db or LABLINK_DB_PATH
	TemplateDir string // templates/ (respects LABLINK_HOME)
}

// ResolvePaths returns all lablink paths, respecting env var overrides.
// Environment variables:
//   - LABLINK_HOME: base directory for all lablink state (default: ~/.lablink)
//   - LABLINK_CONFIG_PATH: config file (default: $LABLINK_HOME/config.yaml)
//   - LABLINK_DB_PATH: device-link database (default: $LABLINK_HOME/links.db)
//
// If LABLINK_HOME is set, it becomes the base for all default paths.
// Specific env vars override both the default and the LABLINK_HOME base.
func ResolvePaths() (*Paths, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}

	return &Paths{
		Home:        home,
		ConfigPath:  resolvePathWithEnv("LABLINK_CONFIG_PATH", home, "config.yaml"),
		LinkDBPath:  resolvePathWithEnv("LABLINK_DB_PATH", home, "links.db"),
		TemplateDir: filepath.Join(home, "templates"),
	}, nil
}

// resolveHome returns the lablink home directory from LABLINK_HOME or ~/.lablink.
func resolveHome() (string, error) {
	if v := os.Getenv("LABLINK_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".lablink"), nil
}

// resolvePathWithEnv returns the path from envKey if set, otherwise joins base + suffix.
func resolvePathWithEnv(envKey, base, suffix string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return filepath.Join(base, suffix)
}
