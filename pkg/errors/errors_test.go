package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound_CarriesEntityAndID(t *testing.T) {
	err := NotFound(EntityFilm, 42)

	assert.Equal(t, ErrCodeNotFound, err.Code)
	assert.Equal(t, EntityFilm, err.Entity)
	assert.Equal(t, uint(42), err.ID)
	assert.Equal(t, "NOT_FOUND: film 42 not found", err.Error())
}

func TestCodeOf_ThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "Plain not found", err: NotFound(EntityUser, 1), want: ErrCodeNotFound},
		{name: "fmt wrapped", err: fmt.Errorf("like film: %w", NotFound(EntityFilm, 3)), want: ErrCodeNotFound},
		{name: "Invalid argument", err: Invalid("n must be positive"), want: ErrCodeInvalidArgument},
		{name: "Foreign error", err: stderrors.New("boom"), want: ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestEntityOf(t *testing.T) {
	wrapped := fmt.Errorf("facade: %w", NotFound(EntityUser, 7))

	assert.Equal(t, EntityUser, EntityOf(wrapped))
	assert.Equal(t, "", EntityOf(stderrors.New("x")))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound(EntityLike, 1)))
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsInvalid(Invalid("self friendship")))
	assert.True(t, IsConflict(New(ErrCodeConflict, "login taken")))
	assert.False(t, IsConflict(Invalid("x")))
}

func TestWrap_Unwraps(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(cause, ErrCodeInternalError, "failed to count likes")

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}
