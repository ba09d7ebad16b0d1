package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, []string{"000001_create_movies", "000002_movies_year_text"}, names)
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	names, err := List()
	require.NoError(t, err)

	for _, name := range names {
		up, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+name+".up.sql")
		require.NoError(t, err, name)
		down, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+name+".down.sql")
		require.NoError(t, err, name)

		assert.NotEmpty(t, strings.TrimSpace(string(up)), name)
		assert.NotEmpty(t, strings.TrimSpace(string(down)), name)
	}
}

func TestCreateMoviesMigration(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_movies.up.sql")
	require.NoError(t, err)

	sql := string(up)
	assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS movies")
	assert.Contains(t, sql, "idx_movies_title_year")
	assert.NotContains(t, strings.ToUpper(sql), "UNIQUE INDEX")
}
