// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematheca/internal/logging"
)

// ErrNotFound is returned by Load when the catalog file does not exist.
// A missing catalog is fatal at startup: no catalog, no application.
var ErrNotFound = errors.New("catalog file not found")

// Field counts for the two line schemas.
const (
	minimalFields  = 4 // title:minutes:genres:system_name
	extendedFields = 8 // title:year:minutes:genres:system_name:director:cast:synopsis
)

// LoadStats counts what happened during a catalog load.
type LoadStats struct {
	// Lines is the number of non-blank, non-header lines examined.
	Lines int
	// Loaded is the number of movies added to the catalog.
	Loaded int
	// Skipped is the number of lines dropped: malformed, invalid, or
	// carrying a duplicate system name.
	Skipped int
}

// Catalog owns the full ordered list of movies for a session.
// It is populated once by Load and never mutated afterward, so it is safe
// to share read-only without synchronization.
type Catalog struct {
	path   string
	movies []*Movie
	index  map[string]*Movie
	stats  LoadStats
}

// Load reads the catalog file at path line by line and returns the resulting
// catalog. Blank lines, a leading UTF-8 BOM, and an optional header line
// starting with "title:" are tolerated. Lines that cannot be parsed into a
// valid movie are skipped with a warning; loading continues and exposes a
// partial, usable catalog. A missing file returns ErrNotFound.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	c := &Catalog{
		path:  path,
		index: make(map[string]*Movie),
	}
	log := logging.With().Str("component", "catalog").Logger()

	scanner := bufio.NewScanner(f)
	// Synopsis fields can make lines long; the default token limit is too small.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "title:") {
			log.Debug().Int("line", lineNo).Msg("skipping header line")
			continue
		}

		c.stats.Lines++
		m, err := parseLine(line)
		if err != nil {
			c.stats.Skipped++
			log.Warn().Err(err).Int("line", lineNo).Msg("skipping malformed catalog line")
			continue
		}
		if _, dup := c.index[m.SystemName]; dup {
			c.stats.Skipped++
			log.Warn().Str("system_name", m.SystemName).Int("line", lineNo).Msg("skipping duplicate system name")
			continue
		}

		c.movies = append(c.movies, m)
		c.index[m.SystemName] = m
		c.stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("lines", c.stats.Lines).
		Int("loaded", c.stats.Loaded).
		Int("skipped", c.stats.Skipped).
		Msg("catalog loaded")

	return c, nil
}

// parseLine parses one colon-delimited catalog line into a validated movie.
// Four fields select the minimal schema, five or more the extended schema.
func parseLine(line string) (*Movie, error) {
	parts := strings.Split(line, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < minimalFields {
		return nil, fmt.Errorf("%d fields, need at least %d", len(parts), minimalFields)
	}
	if len(parts) == minimalFields {
		return parseMinimal(parts)
	}
	return parseExtended(parts)
}

// parseMinimal parses title:minutes:genres:system_name.
func parseMinimal(parts []string) (*Movie, error) {
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("bad minutes %q: %w", parts[1], err)
	}

	m := &Movie{
		Title:      parts[0],
		Minutes:    minutes,
		Genres:     splitList(parts[2]),
		SystemName: parts[3],
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseExtended parses title:year:minutes:genres:system_name with optional
// director, cast, and synopsis fields. Fields past the eighth are ignored.
func parseExtended(parts []string) (*Movie, error) {
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("bad year %q: %w", parts[1], err)
	}
	minutes, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("bad minutes %q: %w", parts[2], err)
	}

	m := &Movie{
		Title:      parts[0],
		Year:       year,
		Minutes:    minutes,
		Genres:     splitList(parts[3]),
		SystemName: parts[4],
	}
	if len(parts) > 5 {
		m.Directors = splitList(parts[5])
	}
	if len(parts) > 6 {
		m.Cast = parts[6]
	}
	if len(parts) > 7 {
		m.Synopsis = parts[7]
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// splitList splits a comma-joined field into trimmed parts, dropping empties.
func splitList(field string) []string {
	var out []string
	for _, part := range strings.Split(field, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Path returns the file path the catalog was loaded from.
func (c *Catalog) Path() string {
	return c.path
}

// Stats returns the load counters for this catalog.
func (c *Catalog) Stats() LoadStats {
	return c.stats
}

// All returns every movie in file order. Callers must treat the returned
// slice as read-only.
func (c *Catalog) All() []*Movie {
	return c.movies
}

// Count returns the number of movies in the catalog.
func (c *Catalog) Count() int {
	return len(c.movies)
}

// ByGenre returns the movies carrying exactly the given genre, in catalog order.
func (c *Catalog) ByGenre(genre string) []*Movie {
	var out []*Movie
	for _, m := range c.movies {
		if m.HasGenre(genre) {
			out = append(out, m)
		}
	}
	return out
}

// ByGenres returns the union of movies having at least one of the given
// genres, in catalog order, each movie included exactly once.
func (c *Catalog) ByGenres(genres []string) []*Movie {
	if len(genres) == 0 {
		return nil
	}

	want := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		want[g] = struct{}{}
	}

	var out []*Movie
	for _, m := range c.movies {
		for _, g := range m.Genres {
			if _, ok := want[g]; ok {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// SearchByTitle returns the movies whose title contains any whitespace-
// separated token of keywords, case-insensitively, in catalog order.
// Empty keywords return nothing; the application-level "empty query shows
// everything" policy lives in the query engine, not here.
func (c *Catalog) SearchByTitle(keywords string) []*Movie {
	tokens := searchTokens(keywords)
	if len(tokens) == 0 {
		return nil
	}

	var out []*Movie
	for _, m := range c.movies {
		if anyTokenIn(tokens, strings.ToLower(m.Title)) {
			out = append(out, m)
		}
	}
	return out
}

// SearchByTitleOrDirector behaves like SearchByTitle but also matches
// tokens against each of the movie's directors.
func (c *Catalog) SearchByTitleOrDirector(keywords string) []*Movie {
	tokens := searchTokens(keywords)
	if len(tokens) == 0 {
		return nil
	}

	var out []*Movie
	for _, m := range c.movies {
		if anyTokenIn(tokens, strings.ToLower(m.Title)) {
			out = append(out, m)
			continue
		}
		for _, d := range m.Directors {
			if anyTokenIn(tokens, strings.ToLower(d)) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// BySystemName looks up a movie by its stable identifier.
// The second return value reports whether the movie exists.
func (c *Catalog) BySystemName(systemName string) (*Movie, bool) {
	m, ok := c.index[systemName]
	return m, ok
}

// Genres returns the union of every movie's genres, deduplicated and
// sorted ascending.
func (c *Catalog) Genres() []string {
	seen := make(map[string]struct{})
	for _, m := range c.movies {
		for _, g := range m.Genres {
			seen[g] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
