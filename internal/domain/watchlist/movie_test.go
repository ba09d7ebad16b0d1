package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMovie(t *testing.T) {
	t.Run("trims title and year", func(t *testing.T) {
		m := NewMovie("  Dune ", " 2021", "https://x.com/d.jpg", false)

		assert.Equal(t, "Dune", m.Title)
		assert.Equal(t, "2021", m.Year)
		assert.Equal(t, "https://x.com/d.jpg", m.Poster)
		assert.False(t, m.Watched)
		assert.True(t, m.IsNew())
		assert.True(t, m.CreatedAt.IsZero())
	})

	t.Run("keeps the requested watched flag", func(t *testing.T) {
		m := NewMovie("Alien", "1979", "", true)
		assert.True(t, m.Watched)
	})
}

func TestMovie_ToggleWatched(t *testing.T) {
	m := NewMovie("Dune", "2021", "", false)

	m.ToggleWatched()
	assert.True(t, m.Watched)

	m.ToggleWatched()
	assert.False(t, m.Watched)
}
