package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation.Status())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized.Status())
	assert.Equal(t, http.StatusNotFound, NotFound.Status())
	assert.Equal(t, http.StatusConflict, Conflict.Status())
	assert.Equal(t, http.StatusRequestEntityTooLarge, TooLarge.Status())
	assert.Equal(t, http.StatusInternalServerError, Internal.Status())
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("get entry: %w", NewNotFound("Entry does not exist"))
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))

	cause := errors.New("connection reset")
	wrapped := Wrap(cause, "list entries")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, Internal, KindOf(wrapped))
}
