package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	err := Clone(ErrValidation, "grade must be between 2 and 5")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "grade must be between 2 and 5", err.Error())
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

func TestWrapMessage(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, ErrInternal.Code, "failed to save report")
	assert.Equal(t, "failed to save report: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Same(t, ErrForbidden, FromError(ErrForbidden))

	wrapped := fmt.Errorf("outer: %w", ErrSubjectNotFound)
	assert.Equal(t, ErrSubjectNotFound.Code, FromError(wrapped).Code)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
}
