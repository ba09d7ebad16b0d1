package watchlist

import (
	"time"

	"github.com/watchlist/backend/internal/domain/watchlist"
)

// AddMovieInput carries an already-bound add request
type AddMovieInput struct {
	Title   string
	Year    string
	Poster  string
	Watched bool
}

// MovieResponse is the wire shape of a movie. The id is exposed as "_id"
// so existing clients keep working regardless of the storage backend.
type MovieResponse struct {
	ID        string    `json:"_id" example:"66f0c0ffee0123456789abcd"`
	Title     string    `json:"title" example:"Dune"`
	Year      string    `json:"year" example:"2021"`
	Poster    string    `json:"poster" example:"https://example.com/dune.jpg"`
	Watched   bool      `json:"watched" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2026-01-23T12:00:00Z"`
}

// ToMovieResponse converts a domain movie to its response DTO
func ToMovieResponse(m *watchlist.Movie) MovieResponse {
	return MovieResponse{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		Poster:    m.Poster,
		Watched:   m.Watched,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovieResponses converts a slice of domain movies, never returning nil
func ToMovieResponses(movies []watchlist.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for i := range movies {
		out = append(out, ToMovieResponse(&movies[i]))
	}
	return out
}
