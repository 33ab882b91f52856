// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/cinematheca/internal/config"
)

// newTestApp builds an app over a four-movie catalog and a fresh user store,
// with output captured in the returned buffer.
func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	lines := []string{
		"Alpha:1990:100:Action,Drama:alpha:Jane Doe:Cast A:An action drama",
		"Beta:120:Action:beta",
		"Gamma:95:Comedy:gamma",
		"Delta:2001:110:Thriller:delta:Jane Doe:Cast D:A thriller",
	}
	catalogPath := filepath.Join(dir, "catalog.txt")
	if err := os.WriteFile(catalogPath, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Catalog.Path = catalogPath
	cfg.Users.Path = filepath.Join(dir, "users.json")
	cfg.Media.Root = dir
	cfg.Backup.Dir = filepath.Join(dir, "backups")

	var buf bytes.Buffer
	a, err := newApp(cfg, &buf)
	if err != nil {
		t.Fatalf("newApp() unexpected error: %v", err)
	}
	return a, &buf
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)
	if err := a.run(nil); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Usage:") {
		t.Errorf("expected usage output, got: %s", buf.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t)
	if err := a.run([]string{"teleport"}); err == nil {
		t.Fatal("run() expected error for unknown command, got nil")
	}
}

func TestRun_MissingCatalog(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "absent.txt")
	cfg.Users.Path = filepath.Join(t.TempDir(), "users.json")

	if _, err := newApp(cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("newApp() expected error for a missing catalog, got nil")
	}
}

func TestMoviesCommand(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)
	if err := a.run([]string{"movies"}); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"alpha", "Alpha (1990, 100 min)", "beta", "gamma", "delta"} {
		if !strings.Contains(out, want) {
			t.Errorf("movies output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchCommand(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)
	if err := a.run([]string{"search", "jane"}); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "delta") {
		t.Errorf("director search should find alpha and delta:\n%s", out)
	}
	if strings.Contains(out, "gamma") {
		t.Errorf("director search should not find gamma:\n%s", out)
	}
}

func TestGenresCommand(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)
	if err := a.run([]string{"genres"}); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	want := "Action\nComedy\nDrama\nThriller\n"
	if buf.String() != want {
		t.Errorf("genres output = %q, want %q", buf.String(), want)
	}
}

func TestBrowseCommand_Filtered(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)
	if err := a.run([]string{"browse", "Comedy"}); err != nil {
		t.Fatalf("run() unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Comedy (1)") || !strings.Contains(out, "gamma") {
		t.Errorf("browse Comedy output unexpected:\n%s", out)
	}
	if strings.Contains(out, "alpha") {
		t.Errorf("browse Comedy should not list alpha:\n%s", out)
	}
}

func TestUserLifecycle(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)

	if err := a.run([]string{"user", "create", "alice"}); err != nil {
		t.Fatalf("user create: %v", err)
	}
	if !strings.Contains(buf.String(), "created user alice") {
		t.Errorf("unexpected create output: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"whoami"}); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(buf.String(), "alice") {
		t.Errorf("whoami should report alice: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"logout"}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	buf.Reset()
	if err := a.run([]string{"whoami"}); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(buf.String(), "no user selected") {
		t.Errorf("whoami after logout should report no user: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"login", "alice"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(buf.String(), "logged in as alice") {
		t.Errorf("unexpected login output: %s", buf.String())
	}

	if err := a.run([]string{"login", "nobody"}); err == nil {
		t.Error("login with an unknown name should fail")
	}
}

func TestFavoritesFlow(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)

	if err := a.run([]string{"fav", "add", "ghost"}); err == nil {
		t.Error("adding an unknown movie should fail")
	}

	if err := a.run([]string{"fav", "add", "alpha"}); err != nil {
		t.Fatalf("fav add: %v", err)
	}
	buf.Reset()
	if err := a.run([]string{"fav", "add", "alpha"}); err != nil {
		t.Fatalf("fav add: %v", err)
	}
	if !strings.Contains(buf.String(), "already present") {
		t.Errorf("duplicate add should be reported: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"fav", "list"}); err != nil {
		t.Fatalf("fav list: %v", err)
	}
	if !strings.Contains(buf.String(), "alpha") {
		t.Errorf("fav list should contain alpha: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"fav", "remove", "alpha"}); err != nil {
		t.Fatalf("fav remove: %v", err)
	}
	buf.Reset()
	if err := a.run([]string{"fav", "list"}); err != nil {
		t.Fatalf("fav list: %v", err)
	}
	if !strings.Contains(buf.String(), "no movies") {
		t.Errorf("fav list after remove should be empty: %s", buf.String())
	}
}

func TestSeenClearsWatchlist(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)

	if err := a.run([]string{"watch", "add", "beta"}); err != nil {
		t.Fatalf("watch add: %v", err)
	}
	if err := a.run([]string{"seen", "add", "beta"}); err != nil {
		t.Fatalf("seen add: %v", err)
	}

	buf.Reset()
	if err := a.run([]string{"watch", "list"}); err != nil {
		t.Fatalf("watch list: %v", err)
	}
	if !strings.Contains(buf.String(), "no movies") {
		t.Errorf("watchlist should be empty after seen add: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"seen", "list"}); err != nil {
		t.Fatalf("seen list: %v", err)
	}
	if !strings.Contains(buf.String(), "beta") {
		t.Errorf("seen list should contain beta: %s", buf.String())
	}
}

func TestRecommendCommand(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)

	if err := a.run([]string{"recommend"}); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(buf.String(), "no recommendations yet") {
		t.Errorf("fresh user should have no recommendations: %s", buf.String())
	}

	if err := a.run([]string{"like", "add", "Action"}); err != nil {
		t.Fatalf("like add: %v", err)
	}
	buf.Reset()
	if err := a.run([]string{"recommend"}); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") {
		t.Errorf("recommendations should list Action movies:\n%s", out)
	}
}

func TestBackupFlow(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)

	if err := a.run([]string{"backup", "list"}); err != nil {
		t.Fatalf("backup list: %v", err)
	}
	if !strings.Contains(buf.String(), "no snapshots") {
		t.Errorf("expected no snapshots at first: %s", buf.String())
	}

	if err := a.run([]string{"user", "create", "alice"}); err != nil {
		t.Fatalf("user create: %v", err)
	}

	buf.Reset()
	if err := a.run([]string{"backup", "create", "before", "bob"}); err != nil {
		t.Fatalf("backup create: %v", err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(buf.String(), "created snapshot "))
	if !strings.HasPrefix(name, "users-") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected snapshot name %q", name)
	}

	if err := a.run([]string{"user", "create", "bob"}); err != nil {
		t.Fatalf("user create: %v", err)
	}

	buf.Reset()
	if err := a.run([]string{"backup", "list"}); err != nil {
		t.Fatalf("backup list: %v", err)
	}
	if !strings.Contains(buf.String(), name) || !strings.Contains(buf.String(), "before bob") {
		t.Errorf("backup list should show the snapshot and its note: %s", buf.String())
	}

	buf.Reset()
	if err := a.run([]string{"backup", "restore", name}); err != nil {
		t.Fatalf("backup restore: %v", err)
	}

	buf.Reset()
	if err := a.run([]string{"user", "list"}); err != nil {
		t.Fatalf("user list: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "alice") {
		t.Errorf("restored store should contain alice:\n%s", out)
	}
	if strings.Contains(out, "bob") {
		t.Errorf("restored store should not contain bob:\n%s", out)
	}

	if err := a.run([]string{"backup", "restore", "missing.json"}); err == nil {
		t.Error("restoring an unknown snapshot should fail")
	}
}

func TestStatsCommand(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t)
	if err := a.run([]string{"stats"}); err != nil {
		t.Fatalf("stats: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "movies     4") {
		t.Errorf("stats should count 4 movies:\n%s", out)
	}
	if !strings.Contains(out, "users      0") {
		t.Errorf("stats should count 0 users:\n%s", out)
	}
}
