// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

// Package logging provides centralized zerolog-based structured logging
// for Cinematheca.
//
// The package exposes a single global logger configured once at startup,
// plus helpers to derive component-scoped child loggers. JSON output is
// the default; console output is available for interactive use.
//
// # Quick Start
//
//	import "github.com/tomtom215/cinematheca/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Int("movies", n).Msg("catalog loaded")
//	logging.Error().Err(err).Msg("save failed")
//
//	// Component child logger
//	log := logging.With().Str("component", "catalog").Logger()
//	log.Warn().Int("line", lineNo).Msg("skipping malformed line")
//
// # Usage Notes
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	logging.Info().Str("user", u).Int("count", n).Msg("processed")  // Correct
//	logging.Info().Msgf("processed %d items for %s", n, u)          // Avoid
package logging
