package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SentinelClassification(t *testing.T) {
	assert.ErrorIs(t, NotFound("product", "14"), ErrNotFound)
	assert.ErrorIs(t, InvalidInput("bad quantity"), ErrInvalidInput)
	assert.ErrorIs(t, Conflict("cart changed"), ErrConflict)
	assert.ErrorIs(t, Unavailable("stregsystem is down"), ErrUnavailable)

	cause := errors.New("boom")
	assert.ErrorIs(t, Internal(cause), cause)
}

func TestAppError_Message(t *testing.T) {
	err := NotFound("member", "kresten")
	assert.Equal(t, "NOT_FOUND: member with id kresten not found", err.Error())

	wrapped := &AppError{Code: "INTERNAL_ERROR", Message: "oops", Err: errors.New("cause")}
	assert.Contains(t, wrapped.Error(), "cause")
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("product", "1")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("nope")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("busy")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(Unavailable("down")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("unknown")))
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("load cart: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestWrap_PreservesClassification(t *testing.T) {
	err := Wrap(NotFound("session", "abc"), "checkout")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "checkout")
}
