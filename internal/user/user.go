// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package user

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/tomtom215/cinematheca/internal/validation"
)

// User is a local profile with set-like membership lists. Lists preserve
// insertion order and never hold duplicates. The zero value is not usable;
// construct users with NewUser or FromRecord.
//
// A User performs no I/O. Call sites mutate it and then ask the owning Store
// to persist.
type User struct {
	id          int64
	username    string
	email       string
	favorites   []string
	watchlist   []string
	watched     []string
	likedGenres []string
}

// Record is the JSON shape of a persisted user. The email is deliberately
// not persisted; it is session-scoped profile decoration.
type Record struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username" validate:"required"`
	Favorites   []string `json:"favorites"`
	Watchlist   []string `json:"watchlist"`
	Watched     []string `json:"watched"`
	LikedGenres []string `json:"likedGenres"`
}

// NewUser creates a user with a fresh id and empty membership lists.
// The username is required.
func NewUser(username, email string) (*User, error) {
	u, err := FromRecord(Record{Username: username})
	if err != nil {
		return nil, err
	}
	u.email = email
	return u, nil
}

// FromRecord reconstructs a user from its persisted form. Missing lists
// default to empty, and a zero id is replaced with a freshly generated one.
// A missing username is a validation error.
func FromRecord(rec Record) (*User, error) {
	if verr := validation.ValidateStruct(&rec); verr != nil {
		return nil, fmt.Errorf("invalid user record: %w", verr)
	}

	id := rec.UserID
	if id == 0 {
		id = generateID()
	}

	return &User{
		id:          id,
		username:    rec.Username,
		favorites:   cloneList(rec.Favorites),
		watchlist:   cloneList(rec.Watchlist),
		watched:     cloneList(rec.Watched),
		likedGenres: cloneList(rec.LikedGenres),
	}, nil
}

// ToRecord converts the user to its persisted form.
func (u *User) ToRecord() Record {
	return Record{
		UserID:      u.id,
		Username:    u.username,
		Favorites:   cloneList(u.favorites),
		Watchlist:   cloneList(u.watchlist),
		Watched:     cloneList(u.watched),
		LikedGenres: cloneList(u.likedGenres),
	}
}

// ID returns the unique numeric id of the user.
func (u *User) ID() int64 { return u.id }

// Username returns the display name of the user.
func (u *User) Username() string { return u.username }

// Email returns the optional email of the user.
func (u *User) Email() string { return u.email }

// AddFavorite adds a movie to the favorites. It reports false if the movie
// was already present.
func (u *User) AddFavorite(systemName string) bool {
	var added bool
	u.favorites, added = appendUnique(u.favorites, systemName)
	return added
}

// RemoveFavorite removes a movie from the favorites. It reports false if the
// movie was not present.
func (u *User) RemoveFavorite(systemName string) bool {
	var removed bool
	u.favorites, removed = removeValue(u.favorites, systemName)
	return removed
}

// IsFavorite reports whether a movie is in the favorites.
func (u *User) IsFavorite(systemName string) bool {
	return slices.Contains(u.favorites, systemName)
}

// Favorites returns the favorite movie system names in insertion order.
func (u *User) Favorites() []string { return cloneList(u.favorites) }

// AddToWatchlist adds a movie to the watchlist. It reports false if the
// movie was already present.
func (u *User) AddToWatchlist(systemName string) bool {
	var added bool
	u.watchlist, added = appendUnique(u.watchlist, systemName)
	return added
}

// RemoveFromWatchlist removes a movie from the watchlist. It reports false
// if the movie was not present.
func (u *User) RemoveFromWatchlist(systemName string) bool {
	var removed bool
	u.watchlist, removed = removeValue(u.watchlist, systemName)
	return removed
}

// IsInWatchlist reports whether a movie is in the watchlist.
func (u *User) IsInWatchlist(systemName string) bool {
	return slices.Contains(u.watchlist, systemName)
}

// Watchlist returns the watchlist system names in insertion order.
func (u *User) Watchlist() []string { return cloneList(u.watchlist) }

// MarkAsWatched records a movie as watched and removes it from the
// watchlist. The watchlist removal is attempted even when the movie was
// already watched. It reports false if the movie was already watched.
func (u *User) MarkAsWatched(systemName string) bool {
	u.watchlist, _ = removeValue(u.watchlist, systemName)
	var added bool
	u.watched, added = appendUnique(u.watched, systemName)
	return added
}

// UnmarkAsWatched removes a movie from the watched history. It reports false
// if the movie was not present.
func (u *User) UnmarkAsWatched(systemName string) bool {
	var removed bool
	u.watched, removed = removeValue(u.watched, systemName)
	return removed
}

// IsWatched reports whether a movie is in the watched history.
func (u *User) IsWatched(systemName string) bool {
	return slices.Contains(u.watched, systemName)
}

// Watched returns the watched system names in insertion order.
func (u *User) Watched() []string { return cloneList(u.watched) }

// AddLikedGenre adds a genre to the liked genres. It reports false if the
// genre was already present.
func (u *User) AddLikedGenre(genre string) bool {
	var added bool
	u.likedGenres, added = appendUnique(u.likedGenres, genre)
	return added
}

// RemoveLikedGenre removes a genre from the liked genres. It reports false
// if the genre was not present.
func (u *User) RemoveLikedGenre(genre string) bool {
	var removed bool
	u.likedGenres, removed = removeValue(u.likedGenres, genre)
	return removed
}

// IsLikedGenre reports whether a genre is liked.
func (u *User) IsLikedGenre(genre string) bool {
	return slices.Contains(u.likedGenres, genre)
}

// LikedGenres returns the liked genres in insertion order.
func (u *User) LikedGenres() []string { return cloneList(u.likedGenres) }

// String implements fmt.Stringer.
func (u *User) String() string {
	return fmt.Sprintf("%s (id %d)", u.username, u.id)
}

// generateID returns a random nonzero id. Zero is reserved as the
// "no user" sentinel.
func generateID() int64 {
	for {
		if id := int64(uuid.New().ID()); id != 0 {
			return id
		}
	}
}

// appendUnique appends v if absent and reports whether it was added.
func appendUnique(list []string, v string) ([]string, bool) {
	if slices.Contains(list, v) {
		return list, false
	}
	return append(list, v), true
}

// removeValue removes the first occurrence of v and reports whether it was
// present.
func removeValue(list []string, v string) ([]string, bool) {
	i := slices.Index(list, v)
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

// cloneList copies a list, normalizing nil to an empty slice so persisted
// JSON always carries arrays.
func cloneList(list []string) []string {
	out := make([]string, 0, len(list))
	return append(out, list...)
}
