package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel of the same kind", func(t *testing.T) {
		err := NewDomainError(KindNotFound, "Movie not found")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrConflict))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("toggle: %w", NewDomainError(KindConflict, "dup"))
		assert.True(t, errors.Is(err, ErrConflict))
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("boom"), ErrStorageFault))
	})
}

func TestNewStorageFault(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageFault(cause)

	assert.True(t, errors.Is(err, ErrStorageFault))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "storage operation failed: connection reset", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"not found", ErrNotFound, KindNotFound},
		{"conflict", fmt.Errorf("wrap: %w", ErrConflict), KindConflict},
		{"storage fault", NewStorageFault(errors.New("x")), KindStorageFault},
		{"unclassified", errors.New("x"), KindStorageFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
