// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tomtom215/cinematheca/internal/validation"
)

// Movie is one catalog entry. Movies are constructed during catalog load and
// never mutated afterward; identity is the SystemName alone, so two movies
// with the same SystemName are the same entity regardless of other fields.
type Movie struct {
	Title      string
	Minutes    int      `validate:"min=0"`
	Genres     []string `validate:"min=1"`
	SystemName string   `validate:"required"`

	// Extended schema fields. Zero values mean "not present in the source".
	Year      int
	Directors []string
	Cast      string
	Synopsis  string
}

// NewMovie constructs a minimal-schema movie and validates it.
// Extended fields can be set on the struct directly before calling Validate.
func NewMovie(title string, minutes int, genres []string, systemName string) (*Movie, error) {
	m := &Movie{
		Title:      title,
		Minutes:    minutes,
		Genres:     genres,
		SystemName: systemName,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the movie invariants: a non-empty system name, a
// non-negative duration, and at least one genre.
func (m *Movie) Validate() error {
	if verr := validation.ValidateStruct(m); verr != nil {
		return fmt.Errorf("invalid movie: %w", verr)
	}
	return nil
}

// Equal reports whether other is the same catalog entity.
// Equality is defined solely by SystemName.
func (m *Movie) Equal(other *Movie) bool {
	if other == nil {
		return false
	}
	return m.SystemName == other.SystemName
}

// HasGenre reports whether genre appears in the movie's genre list,
// by exact string match.
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// MatchesKeywords reports whether any whitespace-separated token of keywords
// is a substring of the title, synopsis, cast, or any director. Matching is
// case-insensitive. Empty keywords match nothing.
func (m *Movie) MatchesKeywords(keywords string) bool {
	tokens := searchTokens(keywords)
	if len(tokens) == 0 {
		return false
	}

	haystacks := []string{
		strings.ToLower(m.Title),
		strings.ToLower(m.Synopsis),
		strings.ToLower(m.Cast),
	}
	for _, d := range m.Directors {
		haystacks = append(haystacks, strings.ToLower(d))
	}

	for _, h := range haystacks {
		if h == "" {
			continue
		}
		if anyTokenIn(tokens, h) {
			return true
		}
	}
	return false
}

// TilePath returns the path of the movie's tile image under the media root.
func (m *Movie) TilePath(mediaRoot string) string {
	return filepath.Join(mediaRoot, "movies_tiles", m.SystemName+".jpg")
}

// VideoPath returns the path of the movie's video file under the media root.
func (m *Movie) VideoPath(mediaRoot string) string {
	return filepath.Join(mediaRoot, "movies", m.SystemName+".mp4")
}

// String renders the movie for listings: "Title (1999, 136 min)",
// omitting the year when the source did not provide one.
func (m *Movie) String() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d, %d min)", m.Title, m.Year, m.Minutes)
	}
	return fmt.Sprintf("%s (%d min)", m.Title, m.Minutes)
}

// searchTokens lower-cases and splits keywords on whitespace.
func searchTokens(keywords string) []string {
	return strings.Fields(strings.ToLower(keywords))
}

// anyTokenIn reports whether any token is a substring of haystack.
// Both sides are expected to be lower-cased already.
func anyTokenIn(tokens []string, haystack string) bool {
	for _, t := range tokens {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
