// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

/*
Package catalog holds the read-only movie catalog for a session.

A Catalog is loaded once at startup from a colon-delimited text file and is
immutable afterward, so it can be shared read-only across any number of
callers without synchronization. Each line of the backing file is one movie
in one of two schemas:

	title:minutes:genres:system_name
	title:year:minutes:genres:system_name:director:cast:synopsis

The extended schema's trailing three fields are optional. Genres and
directors are comma-separated within their field and are split into slices
at load time. Blank lines, an optional leading "title:" header, a leading
UTF-8 BOM, and malformed lines are all tolerated; malformed lines are
skipped with a logged warning so a partial catalog still loads.

The system name is the stable unique identifier for a movie, independent
of its title, and is the only field that participates in movie equality.
*/
package catalog
