// Package watchlist holds the client-side view of the movie list: the
// in-memory state, the filters applied to it, input validation, the
// notification slot and the text rendering used by the CLI.
package watchlist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/watchlist/backend/internal/client/api"
)

// WatchFilter narrows the list by watched state
type WatchFilter string

const (
	FilterAll       WatchFilter = "all"
	FilterWatched   WatchFilter = "watched"
	FilterUnwatched WatchFilter = "unwatched"
)

// ParseWatchFilter validates a filter name
func ParseWatchFilter(s string) (WatchFilter, error) {
	switch f := WatchFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterWatched, FilterUnwatched:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, watched or unwatched)", s)
	}
}

// State is everything the client knows. It is a value: the With* methods
// return a modified copy and never touch the receiver.
type State struct {
	Movies []api.Movie
	Filter WatchFilter
	Year   string
	Search string
}

// NewState returns an empty state showing all movies
func NewState() State {
	return State{Filter: FilterAll}
}

// WithMovies replaces the movie list, as after a successful fetch
func (s State) WithMovies(movies []api.Movie) State {
	s.Movies = movies
	return s
}

// WithFilter sets the watched-state filter
func (s State) WithFilter(f WatchFilter) State {
	s.Filter = f
	return s
}

// WithYear sets the exact year filter. Empty shows every year.
func (s State) WithYear(year string) State {
	s.Year = strings.TrimSpace(year)
	return s
}

// WithSearch sets the title search. The term is trimmed and lower-cased.
func (s State) WithSearch(term string) State {
	s.Search = strings.ToLower(strings.TrimSpace(term))
	return s
}

// Visible applies the filters in order: watched state, exact year, then
// case-insensitive title search.
func Visible(s State) []api.Movie {
	out := make([]api.Movie, 0, len(s.Movies))
	for _, m := range s.Movies {
		switch s.Filter {
		case FilterWatched:
			if !m.Watched {
				continue
			}
		case FilterUnwatched:
			if m.Watched {
				continue
			}
		}
		if s.Year != "" && m.Year.String() != s.Year {
			continue
		}
		if s.Search != "" && !strings.Contains(strings.ToLower(m.Title), s.Search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Years returns the distinct non-empty years of movies, newest first.
// Years that do not start with a number sort after the numeric ones.
func Years(movies []api.Movie) []string {
	seen := make(map[string]struct{}, len(movies))
	years := make([]string, 0, len(movies))
	for _, m := range movies {
		y := m.Year.String()
		if y == "" {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}

	sort.SliceStable(years, func(i, j int) bool {
		a, aok := ParseYear(years[i])
		b, bok := ParseYear(years[j])
		switch {
		case aok && bok:
			return a > b
		case aok != bok:
			return aok
		default:
			return years[i] > years[j]
		}
	})
	return years
}
