// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

// Package user provides local user profiles and their JSON persistence.
//
// A User holds four ordered, set-like membership lists: favorites, watchlist,
// watched, and liked genres. Movies are referenced by system name only, so
// profiles persist independently of catalog contents. Add and remove
// operations are idempotent and report whether they changed anything.
// Marking a movie as watched also removes it from the watchlist.
//
// The Store owns all users plus the current-session selection and persists
// them to a single JSON file. A missing file is a legitimate empty store, not
// an error. A present but unreadable file surfaces a *PersistenceError and
// leaves the in-memory store untouched. Store mutators (CreateUser,
// SetCurrent, DeleteUser, ...) persist immediately on a best-effort basis;
// callers that mutate a User directly are responsible for calling Save
// afterwards.
package user
