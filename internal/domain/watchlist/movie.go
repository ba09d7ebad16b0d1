package watchlist

import (
	"strings"
	"time"
)

// Limits shared by server-side binding and client-side validation.
const (
	MaxTitleLength = 40
	MinYear        = 1888
	MaxYear        = 2099
)

// Movie is a single watchlist entry.
// ID and CreatedAt are assigned by the repository on insert and never change afterwards.
type Movie struct {
	ID        string
	Title     string
	Year      string
	Poster    string
	Watched   bool
	CreatedAt time.Time
}

// NewMovie creates an unsaved movie. Title and year are trimmed; the poster is kept as given.
func NewMovie(title, year, poster string, watched bool) *Movie {
	return &Movie{
		Title:   strings.TrimSpace(title),
		Year:    strings.TrimSpace(year),
		Poster:  poster,
		Watched: watched,
	}
}

// ToggleWatched flips the watched flag. It is the only mutation a stored movie allows.
func (m *Movie) ToggleWatched() {
	m.Watched = !m.Watched
}

// IsNew reports whether the movie has not been persisted yet.
func (m *Movie) IsNew() bool {
	return m.ID == ""
}
