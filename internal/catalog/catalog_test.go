// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/cinematheca/internal/logging"
)

// writeCatalogFile writes lines to a temporary catalog file and returns its path.
func writeCatalogFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.txt")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}

// captureLogs redirects the global logger into a buffer for the duration of
// the test. Tests using it must not run in parallel.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return &buf
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_MinimalSchema(t *testing.T) {
	t.Parallel()

	path := writeCatalogFile(t, "Heat:170:Action,Crime:heat")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if c.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", c.Count())
	}

	m, ok := c.BySystemName("heat")
	if !ok {
		t.Fatal("BySystemName(heat) not found")
	}
	if m.Title != "Heat" {
		t.Errorf("Title = %q, want %q", m.Title, "Heat")
	}
	if m.Minutes != 170 {
		t.Errorf("Minutes = %d, want 170", m.Minutes)
	}
	if want := []string{"Action", "Crime"}; !reflect.DeepEqual(m.Genres, want) {
		t.Errorf("Genres = %v, want %v", m.Genres, want)
	}
	if m.Year != 0 {
		t.Errorf("Year = %d, want 0 for minimal schema", m.Year)
	}
	if len(m.Directors) != 0 || m.Cast != "" || m.Synopsis != "" {
		t.Error("extended fields should be empty for minimal schema")
	}
}

func TestLoad_ExtendedSchema(t *testing.T) {
	t.Parallel()

	path := writeCatalogFile(t,
		"The Matrix:1999:136:Action , Sci-Fi:the_matrix:Lana Wachowski, Lilly Wachowski:Keanu Reeves, Carrie-Anne Moss:A hacker discovers reality is a simulation",
	)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	m, ok := c.BySystemName("the_matrix")
	if !ok {
		t.Fatal("BySystemName(the_matrix) not found")
	}
	if m.Title != "The Matrix" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Year != 1999 {
		t.Errorf("Year = %d, want 1999", m.Year)
	}
	if m.Minutes != 136 {
		t.Errorf("Minutes = %d, want 136", m.Minutes)
	}
	if want := []string{"Action", "Sci-Fi"}; !reflect.DeepEqual(m.Genres, want) {
		t.Errorf("Genres = %v, want %v", m.Genres, want)
	}
	if want := []string{"Lana Wachowski", "Lilly Wachowski"}; !reflect.DeepEqual(m.Directors, want) {
		t.Errorf("Directors = %v, want %v", m.Directors, want)
	}
	if m.Cast != "Keanu Reeves, Carrie-Anne Moss" {
		t.Errorf("Cast = %q", m.Cast)
	}
	if m.Synopsis != "A hacker discovers reality is a simulation" {
		t.Errorf("Synopsis = %q", m.Synopsis)
	}
}

func TestLoad_ExtendedSchemaOptionalFields(t *testing.T) {
	t.Parallel()

	// Five fields: extended schema with director, cast, and synopsis omitted.
	path := writeCatalogFile(t, "Heat:1995:170:Crime:heat")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	m, ok := c.BySystemName("heat")
	if !ok {
		t.Fatal("BySystemName(heat) not found")
	}
	if m.Year != 1995 {
		t.Errorf("Year = %d, want 1995", m.Year)
	}
	if len(m.Directors) != 0 {
		t.Errorf("Directors = %v, want empty", m.Directors)
	}
}

func TestLoad_ToleratesBOMHeaderAndBlanks(t *testing.T) {
	path := writeCatalogFile(t,
		"\ufefftitle:year:minutes:genre:system_name:director:cast:synopsis",
		"",
		"Heat:170:Action,Crime:heat",
		"   ",
		"The Matrix:1999:136:Action:the_matrix",
	)

	buf := captureLogs(t)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}

	stats := c.Stats()
	if stats.Lines != 2 || stats.Loaded != 2 || stats.Skipped != 0 {
		t.Errorf("Stats() = %+v, want 2 lines, 2 loaded, 0 skipped", stats)
	}
	if strings.Contains(buf.String(), "skipping malformed") {
		t.Errorf("no lines should have been reported malformed, logs: %s", buf.String())
	}
}

func TestLoad_SkipsBadLines(t *testing.T) {
	path := writeCatalogFile(t,
		"Heat:170:Action,Crime:heat",
		"only:two",
		"Bad Minutes:abc:Action:bad_minutes",
		"Bad Year:19x9:100:Drama:bad_year",
		"Negative:-5:Action:negative",
		"No Genre:100::no_genre",
		"Heat Again:113:Thriller:heat",
		"The Matrix:1999:136:Action:the_matrix",
	)

	buf := captureLogs(t)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if c.Count() != 2 {
		t.Errorf("Count() = %d, want 2", c.Count())
	}
	if _, ok := c.BySystemName("heat"); !ok {
		t.Error("heat should have loaded")
	}
	if _, ok := c.BySystemName("the_matrix"); !ok {
		t.Error("the_matrix should have loaded")
	}
	if m, _ := c.BySystemName("heat"); m.Minutes != 170 {
		t.Errorf("duplicate system name should keep the first entry, Minutes = %d", m.Minutes)
	}

	stats := c.Stats()
	if stats.Lines != 8 {
		t.Errorf("Stats().Lines = %d, want 8", stats.Lines)
	}
	if stats.Loaded != 2 {
		t.Errorf("Stats().Loaded = %d, want 2", stats.Loaded)
	}
	if stats.Skipped != 6 {
		t.Errorf("Stats().Skipped = %d, want 6", stats.Skipped)
	}

	logs := buf.String()
	if !strings.Contains(logs, "skipping malformed catalog line") {
		t.Error("expected a warning for malformed lines")
	}
	if !strings.Contains(logs, "skipping duplicate system name") {
		t.Error("expected a warning for the duplicate system name")
	}
}

func TestLoad_ExtraFieldsIgnored(t *testing.T) {
	t.Parallel()

	path := writeCatalogFile(t,
		"Heat:1995:170:Crime:heat:Michael Mann:Al Pacino, Robert De Niro:Cat and mouse in LA:extra:more",
	)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	m, ok := c.BySystemName("heat")
	if !ok {
		t.Fatal("BySystemName(heat) not found")
	}
	if m.Synopsis != "Cat and mouse in LA" {
		t.Errorf("Synopsis = %q, fields past the eighth should be ignored", m.Synopsis)
	}
}

// queryFixture loads a small catalog used by the query tests:
// Alpha (Action, Drama), Beta (Action), Gamma (Comedy).
func queryFixture(t *testing.T) *Catalog {
	t.Helper()

	path := writeCatalogFile(t,
		"Alpha:1990:100:Action,Drama:alpha:Jane Doe:A Cast:An action drama",
		"Beta:120:Action:beta",
		"Gamma:95:Comedy:gamma",
	)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return c
}

func systemNames(movies []*Movie) []string {
	names := make([]string, 0, len(movies))
	for _, m := range movies {
		names = append(names, m.SystemName)
	}
	return names
}

func TestCatalogAll(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	want := []string{"alpha", "beta", "gamma"}
	if got := systemNames(c.All()); !reflect.DeepEqual(got, want) {
		t.Errorf("All() order = %v, want %v", got, want)
	}
	if c.Count() != 3 {
		t.Errorf("Count() = %d, want 3", c.Count())
	}
}

func TestCatalogByGenre(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	if got := systemNames(c.ByGenre("Action")); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("ByGenre(Action) = %v", got)
	}
	if got := c.ByGenre("Horror"); len(got) != 0 {
		t.Errorf("ByGenre(Horror) = %v, want empty", systemNames(got))
	}
}

func TestCatalogByGenres(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	tests := []struct {
		name   string
		genres []string
		want   []string
	}{
		{"single genre keeps catalog order", []string{"Action"}, []string{"alpha", "beta"}},
		{"union without duplicates", []string{"Action", "Drama"}, []string{"alpha", "beta"}},
		{"union across buckets", []string{"Drama", "Comedy"}, []string{"alpha", "gamma"}},
		{"unknown genre ignored", []string{"Horror", "Comedy"}, []string{"gamma"}},
		{"no genres selects nothing", nil, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := systemNames(c.ByGenres(tt.genres))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ByGenres(%v) = %v, want %v", tt.genres, got, tt.want)
			}
		})
	}
}

func TestCatalogSearchByTitle(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	tests := []struct {
		name     string
		keywords string
		want     []string
	}{
		{"exact word", "alpha", []string{"alpha"}},
		{"case-insensitive", "ALPHA", []string{"alpha"}},
		{"any token", "beta gamma", []string{"beta", "gamma"}},
		{"empty selects nothing", "", nil},
		{"whitespace selects nothing", "   ", nil},
		{"no match", "delta", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := systemNames(c.SearchByTitle(tt.keywords))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchByTitle(%q) = %v, want %v", tt.keywords, got, tt.want)
			}
		})
	}
}

func TestCatalogSearchByTitleOrDirector(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	if got := systemNames(c.SearchByTitleOrDirector("doe")); !reflect.DeepEqual(got, []string{"alpha"}) {
		t.Errorf("SearchByTitleOrDirector(doe) = %v, want [alpha]", got)
	}
	if got := systemNames(c.SearchByTitleOrDirector("beta")); !reflect.DeepEqual(got, []string{"beta"}) {
		t.Errorf("SearchByTitleOrDirector(beta) = %v, want [beta]", got)
	}
	if got := c.SearchByTitleOrDirector(""); len(got) != 0 {
		t.Errorf("SearchByTitleOrDirector(\"\") = %v, want empty", systemNames(got))
	}
}

func TestCatalogGenres(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	want := []string{"Action", "Comedy", "Drama"}
	if got := c.Genres(); !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v (sorted, deduplicated)", got, want)
	}
}

func TestCatalogBySystemName(t *testing.T) {
	t.Parallel()

	c := queryFixture(t)

	if _, ok := c.BySystemName("alpha"); !ok {
		t.Error("BySystemName(alpha) should be found")
	}
	if _, ok := c.BySystemName("missing"); ok {
		t.Error("BySystemName(missing) should not be found")
	}
}
