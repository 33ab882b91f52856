// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package recommend

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematheca/internal/catalog"
	"github.com/tomtom215/cinematheca/internal/logging"
	"github.com/tomtom215/cinematheca/internal/user"
)

// Engine answers presentation-layer queries over a loaded catalog and a
// user's membership lists. It never mutates either.
type Engine struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// GenreGroup is one bucket of a genre grouping. Buckets keep the order in
// which their genre was first seen.
type GenreGroup struct {
	Genre  string
	Movies []*catalog.Movie
}

// New creates an engine over the given catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{
		catalog: c,
		logger:  logging.With().Str("component", "recommend").Logger(),
	}
}

// AllMovies returns every movie in catalog order.
func (e *Engine) AllMovies() []*catalog.Movie {
	return e.catalog.All()
}

// SearchMovies returns movies whose title or director matches the query.
// An empty or whitespace-only query returns all movies; this deliberately
// differs from the catalog's own search, which returns nothing, because a
// cleared search box means "show everything".
func (e *Engine) SearchMovies(query string) []*catalog.Movie {
	query = strings.TrimSpace(query)
	if query == "" {
		return e.catalog.All()
	}
	return e.catalog.SearchByTitleOrDirector(query)
}

// AvailableGenres returns all catalog genres, sorted and deduplicated.
func (e *Engine) AvailableGenres() []string {
	return e.catalog.Genres()
}

// MovieCount returns the number of movies in the catalog.
func (e *Engine) MovieCount() int {
	return e.catalog.Count()
}

// MoviesByGenres returns the movies matching any of the given genres, in
// catalog order without duplicates.
func (e *Engine) MoviesByGenres(genres []string) []*catalog.Movie {
	return e.catalog.ByGenres(genres)
}

// GroupByGenre buckets movies by genre. A movie appears once in the bucket
// of every genre it carries. Buckets follow first-seen-genre order and keep
// the input order of their movies. A nil input groups the whole catalog.
func (e *Engine) GroupByGenre(movies []*catalog.Movie) []GenreGroup {
	if movies == nil {
		movies = e.catalog.All()
	}

	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	groups := make([]GenreGroup, 0)

	for _, m := range movies {
		for _, genre := range m.Genres {
			i, ok := index[genre]
			if !ok {
				i = len(groups)
				index[genre] = i
				seen[genre] = make(map[string]struct{})
				groups = append(groups, GenreGroup{Genre: genre})
			}
			if _, dup := seen[genre][m.SystemName]; dup {
				continue
			}
			seen[genre][m.SystemName] = struct{}{}
			groups[i].Movies = append(groups[i].Movies, m)
		}
	}
	return groups
}

// FavoriteMovies resolves the user's favorites against the catalog,
// dropping ids that no longer resolve and preserving list order.
func (e *Engine) FavoriteMovies(u *user.User) []*catalog.Movie {
	if u == nil {
		return nil
	}
	return e.resolve(u.Favorites())
}

// WatchlistMovies resolves the user's watchlist against the catalog.
func (e *Engine) WatchlistMovies(u *user.User) []*catalog.Movie {
	if u == nil {
		return nil
	}
	return e.resolve(u.Watchlist())
}

// WatchedMovies resolves the user's watched history against the catalog.
func (e *Engine) WatchedMovies(u *user.User) []*catalog.Movie {
	if u == nil {
		return nil
	}
	return e.resolve(u.Watched())
}

// RecommendedMovies returns personal recommendations for the user. Movies
// matching any liked genre come first in catalog order, movies sharing a
// director with a favorite are appended after them, and watched movies are
// removed last without re-sorting. A user with no liked genres and no
// favorites gets nothing.
func (e *Engine) RecommendedMovies(u *user.User) []*catalog.Movie {
	if u == nil {
		return nil
	}

	liked := u.LikedGenres()
	favorites := u.Favorites()
	if len(liked) == 0 && len(favorites) == 0 {
		return nil
	}

	recommended := e.catalog.ByGenres(liked)
	included := make(map[string]struct{}, len(recommended))
	for _, m := range recommended {
		included[m.SystemName] = struct{}{}
	}
	genreMatches := len(recommended)

	directors := e.favoriteDirectors(favorites)
	if len(directors) > 0 {
		for _, m := range e.catalog.All() {
			if _, ok := included[m.SystemName]; ok {
				continue
			}
			for _, d := range m.Directors {
				if _, match := directors[d]; match {
					included[m.SystemName] = struct{}{}
					recommended = append(recommended, m)
					break
				}
			}
		}
	}

	if watched := u.Watched(); len(watched) > 0 {
		watchedSet := make(map[string]struct{}, len(watched))
		for _, id := range watched {
			watchedSet[id] = struct{}{}
		}
		kept := make([]*catalog.Movie, 0, len(recommended))
		for _, m := range recommended {
			if _, skip := watchedSet[m.SystemName]; !skip {
				kept = append(kept, m)
			}
		}
		recommended = kept
	}

	e.logger.Debug().
		Int64("user_id", u.ID()).
		Int("genre_matches", genreMatches).
		Int("director_set", len(directors)).
		Int("recommended", len(recommended)).
		Msg("recommendations computed")

	return recommended
}

// favoriteDirectors collects the distinct directors of the user's favorite
// movies. Unresolvable favorites contribute nothing.
func (e *Engine) favoriteDirectors(favorites []string) map[string]struct{} {
	directors := make(map[string]struct{})
	for _, id := range favorites {
		m, ok := e.catalog.BySystemName(id)
		if !ok {
			continue
		}
		for _, d := range m.Directors {
			directors[d] = struct{}{}
		}
	}
	return directors
}

// resolve maps system names to movies, dropping names the catalog no longer
// knows while keeping the input order.
func (e *Engine) resolve(ids []string) []*catalog.Movie {
	movies := make([]*catalog.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := e.catalog.BySystemName(id); ok {
			movies = append(movies, m)
		}
	}
	return movies
}
