// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

/*
Package config provides centralized configuration management for Cinematheca.

Configuration is loaded with Koanf v2 from three layered sources, each
overriding the previous:

 1. Defaults: built-in sensible defaults for every setting
 2. Config file: optional YAML file (config.yaml, or CONFIG_PATH)
 3. Environment variables: CATALOG_PATH, USERS_PATH, MEDIA_ROOT,
    BACKUP_DIR, BACKUP_KEEP, LOG_LEVEL, LOG_FORMAT, LOG_CALLER

A .env file in the working directory is read into the environment before
the layers are applied, so it behaves like layer 3.

# Configuration Structure

	catalog:
	  path: data/catalog.txt    # colon-delimited movie catalog
	users:
	  path: data/users.json     # JSON user store
	media:
	  root: data                # root for tile and video paths
	backup:
	  dir: data/backups         # user store snapshot directory
	  keep: 5                   # snapshots retained per store
	logging:
	  level: info               # trace, debug, info, warn, error
	  format: json              # json or console
	  caller: false

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}
	cat, err := catalog.Load(cfg.Catalog.Path)

Config is immutable after Load and safe for concurrent read access.
*/
package config
