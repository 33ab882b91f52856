// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematheca/internal/backup"
	"github.com/tomtom215/cinematheca/internal/catalog"
	"github.com/tomtom215/cinematheca/internal/config"
	"github.com/tomtom215/cinematheca/internal/logging"
	"github.com/tomtom215/cinematheca/internal/recommend"
	"github.com/tomtom215/cinematheca/internal/user"
)

const usageText = `Cinematheca - local movie catalog and recommendations

Usage:
  cinematheca <command> [arguments]

Catalog:
  movies                      list every movie
  search <keywords>           search titles and directors
  genres                      list available genres
  browse [genre ...]          movies grouped by genre
  stats                       catalog and user store statistics

Users:
  user create <name> [email]  create a user and select it
  user list                   list users
  user delete <id>            delete a user by id
  login <name>                select the current user
  logout                      deselect the current user
  whoami                      show the current user

Lists (for the current user):
  fav   add|remove|list [system_name]   favorites
  watch add|remove|list [system_name]   watchlist
  seen  add|remove|list [system_name]   watched history
  like  add|remove|list [genre]         liked genres

Recommendations:
  recommend                   personal recommendations for the current user

Maintenance:
  backup create [note]        snapshot the user store
  backup list                 list snapshots, newest first
  backup restore <name>       restore a snapshot by file name or id
`

// membership selects which of the four user lists a list command targets.
type membership int

const (
	listFavorites membership = iota
	listWatchlist
	listWatched
	listLikedGenres
)

// app wires the loaded catalog, the query engine, and the user store behind
// the command dispatch. Output goes to out so tests can capture it.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	engine  *recommend.Engine
	store   *user.Store
	out     io.Writer
}

// newApp loads the catalog and the user store. A missing catalog is fatal;
// an unreadable user store is reported and replaced with an empty one.
func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	store, err := user.Open(cfg.Users.Path)
	if err != nil {
		return nil, err
	}
	if _, err := store.Load(); err != nil {
		logging.Warn().Err(err).Msg("User store unreadable, continuing with an empty store")
	}

	return &app{
		cfg:     cfg,
		catalog: cat,
		engine:  recommend.New(cat),
		store:   store,
		out:     out,
	}, nil
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usageText)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "movies":
		a.printMovies(a.engine.AllMovies())
		return nil
	case "search":
		a.printMovies(a.engine.SearchMovies(strings.Join(rest, " ")))
		return nil
	case "genres":
		return a.cmdGenres()
	case "browse":
		return a.cmdBrowse(rest)
	case "recommend":
		return a.cmdRecommend()
	case "stats":
		return a.cmdStats()
	case "user":
		return a.cmdUser(rest)
	case "login":
		return a.cmdLogin(rest)
	case "logout":
		a.store.ClearCurrent()
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "fav":
		return a.cmdList(listFavorites, rest)
	case "watch":
		return a.cmdList(listWatchlist, rest)
	case "seen":
		return a.cmdList(listWatched, rest)
	case "like":
		return a.cmdList(listLikedGenres, rest)
	case "backup":
		return a.cmdBackup(rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usageText)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run \"cinematheca help\")", cmd)
	}
}

func (a *app) printMovies(movies []*catalog.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(a.out, "no movies")
		return
	}
	for _, m := range movies {
		fmt.Fprintf(a.out, "%-24s %s [%s]\n", m.SystemName, m, strings.Join(m.Genres, ", "))
	}
}

func (a *app) cmdGenres() error {
	genres := a.engine.AvailableGenres()
	if len(genres) == 0 {
		fmt.Fprintln(a.out, "no genres")
		return nil
	}
	for _, g := range genres {
		fmt.Fprintln(a.out, g)
	}
	return nil
}

func (a *app) cmdBrowse(genres []string) error {
	var movies []*catalog.Movie
	if len(genres) > 0 {
		movies = a.engine.MoviesByGenres(genres)
	}

	groups := a.engine.GroupByGenre(movies)
	if len(genres) > 0 && len(groups) == 0 {
		fmt.Fprintln(a.out, "no movies")
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s (%d)\n", g.Genre, len(g.Movies))
		for _, m := range g.Movies {
			fmt.Fprintf(a.out, "  %-22s %s\n", m.SystemName, m)
		}
	}
	return nil
}

func (a *app) cmdRecommend() error {
	u, err := a.store.GetOrCreateDefaultUser()
	if err != nil {
		return err
	}

	movies := a.engine.RecommendedMovies(u)
	if len(movies) == 0 {
		fmt.Fprintln(a.out, "no recommendations yet - like a genre or add a favorite first")
		return nil
	}
	a.printMovies(movies)
	return nil
}

func (a *app) cmdStats() error {
	stats := a.catalog.Stats()
	fmt.Fprintf(a.out, "catalog    %s\n", a.catalog.Path())
	fmt.Fprintf(a.out, "movies     %d (%d lines read, %d skipped)\n", a.engine.MovieCount(), stats.Lines, stats.Skipped)
	fmt.Fprintf(a.out, "genres     %d\n", len(a.engine.AvailableGenres()))
	fmt.Fprintf(a.out, "user store %s\n", a.store.Path())
	fmt.Fprintf(a.out, "users      %d\n", a.store.Len())
	if u := a.store.Current(); u != nil {
		fmt.Fprintf(a.out, "current    %s\n", u)
	} else {
		fmt.Fprintln(a.out, "current    none")
	}
	return nil
}

func (a *app) cmdUser(args []string) error {
	if len(args) == 0 {
		return errors.New("user: missing subcommand (create, list, delete)")
	}

	switch args[0] {
	case "create":
		if len(args) < 2 {
			return errors.New("user create: username required")
		}
		email := ""
		if len(args) > 2 {
			email = args[2]
		}
		u, err := a.store.CreateUser(args[1], email)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "created user %s\n", u)
		return nil

	case "list":
		users := a.store.Users()
		if len(users) == 0 {
			fmt.Fprintln(a.out, "no users")
			return nil
		}
		current := a.store.Current()
		for _, u := range users {
			marker := " "
			if current != nil && current.ID() == u.ID() {
				marker = "*"
			}
			fmt.Fprintf(a.out, "%s %-12d %s\n", marker, u.ID(), u.Username())
		}
		return nil

	case "delete":
		if len(args) < 2 {
			return errors.New("user delete: id required")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("user delete: invalid id %q", args[1])
		}
		if !a.store.DeleteUser(id) {
			return fmt.Errorf("user delete: %w: %d", user.ErrUserNotFound, id)
		}
		fmt.Fprintf(a.out, "deleted user %d\n", id)
		return nil

	default:
		return fmt.Errorf("user: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdLogin(args []string) error {
	if len(args) == 0 {
		return errors.New("login: username required")
	}
	u, ok := a.store.UserByUsername(args[0])
	if !ok {
		return fmt.Errorf("login: %w: %q", user.ErrUserNotFound, args[0])
	}
	if err := a.store.SetCurrent(u.ID()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", u)
	return nil
}

func (a *app) cmdWhoami() error {
	if u := a.store.Current(); u != nil {
		fmt.Fprintln(a.out, u)
		return nil
	}
	fmt.Fprintln(a.out, "no user selected")
	return nil
}

// cmdList handles the fav, watch, seen, and like commands, which share the
// same add/remove/list shape over different user lists.
func (a *app) cmdList(kind membership, args []string) error {
	if len(args) == 0 {
		return errors.New("missing action (add, remove, list)")
	}
	action, rest := args[0], args[1:]

	u, err := a.store.GetOrCreateDefaultUser()
	if err != nil {
		return err
	}

	switch action {
	case "add":
		if len(rest) == 0 {
			return errors.New("add: value required")
		}
		return a.addToList(u, kind, rest[0])
	case "remove":
		if len(rest) == 0 {
			return errors.New("remove: value required")
		}
		return a.removeFromList(u, kind, rest[0])
	case "list":
		a.showList(u, kind)
		return nil
	default:
		return fmt.Errorf("unknown action %q (want add, remove, or list)", action)
	}
}

func (a *app) addToList(u *user.User, kind membership, value string) error {
	// Movie lists only accept catalog entries; removals stay unchecked so
	// stale ids can always be cleaned up.
	if kind != listLikedGenres {
		if _, ok := a.catalog.BySystemName(value); !ok {
			return fmt.Errorf("unknown movie %q", value)
		}
	}

	var added bool
	switch kind {
	case listFavorites:
		added = u.AddFavorite(value)
	case listWatchlist:
		added = u.AddToWatchlist(value)
	case listWatched:
		added = u.MarkAsWatched(value)
	case listLikedGenres:
		added = u.AddLikedGenre(value)
	}

	a.saveStore()
	if added {
		fmt.Fprintf(a.out, "added %s\n", value)
	} else {
		fmt.Fprintf(a.out, "%s is already present\n", value)
	}
	return nil
}

func (a *app) removeFromList(u *user.User, kind membership, value string) error {
	var removed bool
	switch kind {
	case listFavorites:
		removed = u.RemoveFavorite(value)
	case listWatchlist:
		removed = u.RemoveFromWatchlist(value)
	case listWatched:
		removed = u.UnmarkAsWatched(value)
	case listLikedGenres:
		removed = u.RemoveLikedGenre(value)
	}

	a.saveStore()
	if removed {
		fmt.Fprintf(a.out, "removed %s\n", value)
	} else {
		fmt.Fprintf(a.out, "%s was not present\n", value)
	}
	return nil
}

func (a *app) showList(u *user.User, kind membership) {
	if kind == listLikedGenres {
		genres := u.LikedGenres()
		if len(genres) == 0 {
			fmt.Fprintln(a.out, "no liked genres")
			return
		}
		for _, g := range genres {
			fmt.Fprintln(a.out, g)
		}
		return
	}

	var movies []*catalog.Movie
	switch kind {
	case listFavorites:
		movies = a.engine.FavoriteMovies(u)
	case listWatchlist:
		movies = a.engine.WatchlistMovies(u)
	case listWatched:
		movies = a.engine.WatchedMovies(u)
	}
	a.printMovies(movies)
}

func (a *app) cmdBackup(args []string) error {
	if len(args) == 0 {
		return errors.New("backup: missing subcommand (create, list, restore)")
	}

	mgr, err := backup.NewManager(backup.Config{Dir: a.cfg.Backup.Dir, Keep: a.cfg.Backup.Keep}, a.cfg.Users.Path)
	if err != nil {
		return err
	}

	switch args[0] {
	case "create":
		snap, err := mgr.Create(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "created snapshot %s\n", snap.FileName)
		return nil

	case "list":
		snaps := mgr.Snapshots()
		if len(snaps) == 0 {
			fmt.Fprintln(a.out, "no snapshots")
			return nil
		}
		for _, s := range snaps {
			fmt.Fprintf(a.out, "%s  %s  %d bytes", s.FileName, s.CreatedAt.Format("2006-01-02 15:04:05"), s.FileSize)
			if s.Notes != "" {
				fmt.Fprintf(a.out, "  (%s)", s.Notes)
			}
			fmt.Fprintln(a.out)
		}
		return nil

	case "restore":
		if len(args) < 2 {
			return errors.New("backup restore: snapshot name required")
		}
		if err := mgr.Restore(args[1]); err != nil {
			return err
		}
		// The restored file replaces whatever the store had in memory.
		if _, err := a.store.Load(); err != nil {
			return fmt.Errorf("reload user store: %w", err)
		}
		fmt.Fprintf(a.out, "restored %s\n", args[1])
		return nil

	default:
		return fmt.Errorf("backup: unknown subcommand %q", args[0])
	}
}

// saveStore persists user mutations made outside the store's own mutators.
func (a *app) saveStore() {
	if err := a.store.Save(); err != nil {
		logging.Warn().Err(err).Msg("User store save failed")
	}
}
