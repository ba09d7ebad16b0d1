package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieIDs(t *testing.T) {
	id := newMovieID()
	assert.Regexp(t, objectIDPattern, id)
	assert.NotEqual(t, id, newMovieID())

	oid, ok := parseMovieID(id)
	assert.True(t, ok)
	assert.Equal(t, id, oid.Hex())

	for _, bad := range []string{"", "42", "zzzzzzzzzzzzzzzzzzzzzzzz", id + "0"} {
		_, ok := parseMovieID(bad)
		assert.False(t, ok, bad)
	}
}
