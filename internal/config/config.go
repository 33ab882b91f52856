// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package config

import (
	"fmt"
	"strings"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Catalog CatalogConfig `koanf:"catalog"`
	Users   UsersConfig   `koanf:"users"`
	Media   MediaConfig   `koanf:"media"`
	Backup  BackupConfig  `koanf:"backup"`
	Logging LoggingConfig `koanf:"logging"`
}

// CatalogConfig holds the movie catalog source settings.
//
// Environment Variables:
//   - CATALOG_PATH: path to the colon-delimited catalog file (default: data/catalog.txt)
type CatalogConfig struct {
	// Path is the colon-delimited catalog file the application loads at startup.
	// A missing catalog file is fatal.
	Path string `koanf:"path"`
}

// UsersConfig holds the user store settings.
//
// Environment Variables:
//   - USERS_PATH: path to the JSON user store (default: data/users.json)
type UsersConfig struct {
	// Path is the JSON file holding all users and the current session.
	// A missing store file is treated as an empty store, not an error.
	Path string `koanf:"path"`
}

// MediaConfig holds the media asset layout settings.
//
// Tile images resolve to {root}/movies_tiles/{system_name}.jpg and video
// files to {root}/movies/{system_name}.mp4.
//
// Environment Variables:
//   - MEDIA_ROOT: root directory for tiles and videos (default: data)
type MediaConfig struct {
	// Root is the directory under which movie tiles and videos live.
	Root string `koanf:"root"`
}

// BackupConfig holds the user store snapshot settings.
//
// Environment Variables:
//   - BACKUP_DIR: directory for user store snapshots (default: data/backups)
//   - BACKUP_KEEP: number of snapshots to retain (default: 5)
type BackupConfig struct {
	// Dir is the directory where snapshots and their index are written.
	Dir string `koanf:"dir"`

	// Keep is how many snapshots are retained before the oldest are pruned.
	Keep int `koanf:"keep"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is machine-parseable; console is human-readable.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// validLogLevels are the accepted values for logging.level.
var validLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled"}

// validLogFormats are the accepted values for logging.format.
var validLogFormats = []string{"json", "console"}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateUsers(); err != nil {
		return err
	}

	if err := c.validateMedia(); err != nil {
		return err
	}

	if err := c.validateBackup(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCatalog validates the catalog source settings.
func (c *Config) validateCatalog() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH must not be empty")
	}
	return nil
}

// validateUsers validates the user store settings.
func (c *Config) validateUsers() error {
	if c.Users.Path == "" {
		return fmt.Errorf("USERS_PATH must not be empty")
	}
	return nil
}

// validateMedia validates the media layout settings.
func (c *Config) validateMedia() error {
	if c.Media.Root == "" {
		return fmt.Errorf("MEDIA_ROOT must not be empty")
	}
	return nil
}

// validateBackup validates the snapshot settings.
func (c *Config) validateBackup() error {
	if c.Backup.Dir == "" {
		return fmt.Errorf("BACKUP_DIR must not be empty")
	}
	if c.Backup.Keep < 1 {
		return fmt.Errorf("BACKUP_KEEP must be at least 1, got %d", c.Backup.Keep)
	}
	return nil
}

// validateLogging validates the logging settings.
func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if !contains(validLogLevels, level) {
		return fmt.Errorf("LOG_LEVEL must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if !contains(validLogFormats, format) {
		return fmt.Errorf("LOG_FORMAT must be one of %s, got %q", strings.Join(validLogFormats, ", "), c.Logging.Format)
	}

	return nil
}

// contains reports whether list includes value.
func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// Clone returns a copy of the configuration.
// Config has no reference fields, so a value copy is a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
