package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutForm struct {
	Username string `json:"username" validate:"required,min=2"`
	RoomID   int    `json:"room_id" validate:"gt=0"`
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(checkoutForm{Username: "kresten", RoomID: 10}))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(checkoutForm{RoomID: 10})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "is required", valErr.Fields()["Username"])
	assert.Contains(t, err.Error(), "Username")
}

func TestValidate_MultipleFailures(t *testing.T) {
	err := Validate(checkoutForm{Username: "k", RoomID: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Fields(), 2)
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"username":"kresten","room_id":10}`))

	var form checkoutForm
	require.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, "kresten", form.Username)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`not json`))
	err := DecodeAndValidate(r, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
