package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/krestenlaust/fappen/pkg/errors"
)

func responseWithStatus(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"bad request", http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"conflict", http.StatusConflict, apperrors.ErrConflict},
		{"unavailable", http.StatusServiceUnavailable, apperrors.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseResponseError(responseWithStatus(tt.status, "nope"), "stregsystem")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseResponseError_ServerError(t *testing.T) {
	err := ParseResponseError(responseWithStatus(http.StatusInternalServerError, "boom"), "stregsystem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error (500)")
	assert.Contains(t, err.Error(), "boom")
}

func TestParseResponseError_CollapsesHTMLBody(t *testing.T) {
	body := "<html>\n  <body>\n    Internal   Server\n    Error\n  </body>\n</html>"
	err := ParseResponseError(responseWithStatus(http.StatusBadRequest, body), "stregsystem")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "Internal Server Error")
}

func TestParseResponseError_TruncatesLongBody(t *testing.T) {
	err := ParseResponseError(responseWithStatus(http.StatusBadRequest, strings.Repeat("x", 1000)), "stregsystem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, len(err.Error()), 300)
}

func TestParseResponseError_EmptyBody(t *testing.T) {
	err := ParseResponseError(responseWithStatus(http.StatusBadRequest, ""), "stregsystem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(empty body)")
}
