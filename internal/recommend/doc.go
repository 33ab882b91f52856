// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

// Package recommend is the query facade between the presentation layer and
// the catalog and user models.
//
// The Engine answers every read the UI needs: full and filtered movie
// listings, keyword search, genre grouping, per-user list projections, and
// personal recommendations. All operations are pure reads over an immutable
// catalog; the Engine holds no mutable state and is safe for concurrent use.
//
// Recommendations are rule based, not learned: movies matching any liked
// genre come first in catalog order, movies sharing a director with a
// favorite are appended after them, and everything already watched is
// filtered out without re-sorting.
package recommend
