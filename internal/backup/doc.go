// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

// Package backup provides snapshot and restore functionality for the user
// store file.
//
// Every save of the user store is a full-file rewrite, so a crash or a bad
// write can lose the whole profile history. Snapshots are timestamped copies
// of the store kept next to a metadata.json index, each with a SHA-256
// checksum that is verified before a restore. A count-based retention policy
// prunes the oldest snapshots automatically.
//
// Usage:
//
//	manager, err := backup.NewManager(cfg, storePath)
//	snap, err := manager.Create("before cleanup")
//	err = manager.Restore(snap.FileName)
package backup
