package persistence

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchlist/backend/internal/domain/shared"
	"github.com/watchlist/backend/internal/domain/watchlist"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// runMovieRepositoryContract exercises behavior every backend must share.
// newRepo must return an empty repository.
func runMovieRepositoryContract(t *testing.T, newRepo func(t *testing.T) watchlist.MovieRepository) {
	ctx := context.Background()

	insert := func(t *testing.T, repo watchlist.MovieRepository, title, year string) *watchlist.Movie {
		t.Helper()
		m := watchlist.NewMovie(title, year, "https://img.example/"+year+".jpg", false)
		require.NoError(t, repo.Insert(ctx, m))
		return m
	}

	t.Run("empty repository lists nothing", func(t *testing.T) {
		repo := newRepo(t)

		movies, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("insert assigns id and creation time", func(t *testing.T) {
		repo := newRepo(t)
		before := time.Now().Add(-time.Second)

		m := insert(t, repo, "Dune", "2021")

		assert.Regexp(t, objectIDPattern, m.ID)
		assert.True(t, m.CreatedAt.After(before))
		assert.False(t, m.Watched)
	})

	t.Run("stores year text of any length", func(t *testing.T) {
		repo := newRepo(t)
		year := "year " + strings.Repeat("9", 60)

		m := insert(t, repo, "Metropolis", year)

		found, err := repo.FindByTitleAndYear(ctx, "Metropolis", year)
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)
		assert.Equal(t, year, found.Year)
	})

	t.Run("lists in insertion order", func(t *testing.T) {
		repo := newRepo(t)
		first := insert(t, repo, "Alien", "1979")
		second := insert(t, repo, "Aliens", "1986")
		third := insert(t, repo, "Alien 3", "1992")

		movies, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, []string{first.ID, second.ID, third.ID},
			[]string{movies[0].ID, movies[1].ID, movies[2].ID})
		assert.Equal(t, "1986", movies[1].Year)
		assert.Equal(t, "https://img.example/1979.jpg", movies[0].Poster)
	})

	t.Run("finds by exact title and year", func(t *testing.T) {
		repo := newRepo(t)
		m := insert(t, repo, "Dune", "2021")

		found, err := repo.FindByTitleAndYear(ctx, "Dune", "2021")
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)

		_, err = repo.FindByTitleAndYear(ctx, "dune", "2021")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByTitleAndYear(ctx, "Dune", "1984")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate title and year can be stored", func(t *testing.T) {
		repo := newRepo(t)
		insert(t, repo, "Dune", "2021")
		insert(t, repo, "Dune", "2021")

		movies, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})

	t.Run("find by id", func(t *testing.T) {
		repo := newRepo(t)
		m := insert(t, repo, "Heat", "1995")

		found, err := repo.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "Heat", found.Title)
		assert.WithinDuration(t, m.CreatedAt, found.CreatedAt, time.Millisecond)

		_, err = repo.FindByID(ctx, "000000000000000000000000")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save persists watched flag", func(t *testing.T) {
		repo := newRepo(t)
		m := insert(t, repo, "Heat", "1995")

		m.ToggleWatched()
		require.NoError(t, repo.Save(ctx, m))

		found, err := repo.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.True(t, found.Watched)

		found.ToggleWatched()
		require.NoError(t, repo.Save(ctx, found))

		again, err := repo.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.False(t, again.Watched)
	})

	t.Run("save on vanished movie is a storage fault", func(t *testing.T) {
		repo := newRepo(t)
		m := insert(t, repo, "Heat", "1995")
		require.NoError(t, repo.DeleteByID(ctx, m.ID))

		m.ToggleWatched()
		err := repo.Save(ctx, m)
		require.Error(t, err)
		assert.Equal(t, shared.KindStorageFault, shared.KindOf(err))
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		repo := newRepo(t)
		keep := insert(t, repo, "Alien", "1979")
		drop := insert(t, repo, "Aliens", "1986")

		require.NoError(t, repo.DeleteByID(ctx, drop.ID))

		movies, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, keep.ID, movies[0].ID)
	})

	t.Run("delete of absent id succeeds", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.DeleteByID(ctx, "000000000000000000000000"))
	})

	t.Run("delete of malformed id is not found", func(t *testing.T) {
		repo := newRepo(t)
		assert.ErrorIs(t, repo.DeleteByID(ctx, "42"), shared.ErrNotFound)
	})
}
