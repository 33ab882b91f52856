// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

// Package main is the entry point for the Cinematheca command line client.
//
// Cinematheca is a local, single-user movie catalog: it loads a colon-delimited
// catalog file, keeps per-user favorites, watchlist, watched history, and liked
// genres in a JSON store, and derives rule-based recommendations from them.
// Everything runs against local files; there is no server and no network I/O.
//
// # Startup
//
// Every invocation initializes components in the following order:
//
//  1. Configuration: layered via Koanf v2 (defaults, optional YAML file,
//     environment variables; a .env file is honored)
//  2. Logging: zerolog, configured from LOG_LEVEL / LOG_FORMAT / LOG_CALLER
//  3. Catalog: loaded from CATALOG_PATH; a missing catalog aborts startup
//  4. User store: loaded from USERS_PATH; a missing store starts empty, an
//     unreadable one is reported and skipped
//
// # Configuration
//
// Settings and their environment variables:
//
//   - CATALOG_PATH: colon-delimited movie catalog (default data/catalog.txt)
//   - USERS_PATH: JSON user store (default data/users.json)
//   - MEDIA_ROOT: root directory for tile images and videos (default data)
//   - BACKUP_DIR: directory for user store snapshots (default data/backups)
//   - BACKUP_KEEP: snapshots retained per store (default 5)
//   - LOG_LEVEL: trace, debug, info, warn, error (default info)
//   - LOG_FORMAT: json or console (default json)
//   - LOG_CALLER: annotate log lines with file:line (default false)
//
// # Example Usage
//
// Browse and search the catalog:
//
//	cinematheca movies
//	cinematheca search wachowski
//	cinematheca browse Action Drama
//
// Maintain a profile and get recommendations:
//
//	cinematheca user create alice alice@example.com
//	cinematheca like add Action
//	cinematheca fav add the_matrix
//	cinematheca seen add heat
//	cinematheca recommend
//
// Point the client at another library:
//
//	export CATALOG_PATH=/srv/movies/catalog.txt
//	export USERS_PATH=/srv/movies/users.json
//	cinematheca stats
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/cinematheca/internal/config"
	"github.com/tomtom215/cinematheca/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to start")
	}

	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cinematheca:", err)
		os.Exit(1)
	}
}
