// Package models contains GORM persistence models. Domain entities stay free of
// ORM tags; repositories convert at the boundary.
package models

import (
	"time"

	"github.com/watchlist/backend/internal/domain/watchlist"
)

// MovieModel maps to the movies table.
// The (title, year) index backs the duplicate pre-check. It is not unique.
type MovieModel struct {
	ID        string    `gorm:"type:varchar(24);primaryKey"`
	Title     string    `gorm:"type:varchar(40);not null;index:idx_movies_title_year"`
	Year      string    `gorm:"type:text;not null;index:idx_movies_title_year"`
	Poster    string    `gorm:"type:text;not null"`
	Watched   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_movies_created_at"`
}

// TableName returns the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// ToDomain converts the model to a domain movie
func (m *MovieModel) ToDomain() *watchlist.Movie {
	return &watchlist.Movie{
		ID:        m.ID,
		Title:     m.Title,
		Year:      m.Year,
		Poster:    m.Poster,
		Watched:   m.Watched,
		CreatedAt: m.CreatedAt,
	}
}

// MovieModelFromDomain converts a domain movie to its persistence model
func MovieModelFromDomain(movie *watchlist.Movie) *MovieModel {
	return &MovieModel{
		ID:        movie.ID,
		Title:     movie.Title,
		Year:      movie.Year,
		Poster:    movie.Poster,
		Watched:   movie.Watched,
		CreatedAt: movie.CreatedAt,
	}
}
