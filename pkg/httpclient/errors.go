package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/krestenlaust/fappen/pkg/errors"
)

// ParseResponseError translates a non-2xx response from an upstream service
// into an AppError. The upstream is not expected to speak our error
// envelope (the stregsystem returns plain JSON or HTML bodies), so only the
// status code drives the classification; a trimmed body excerpt is kept
// for diagnostics.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	excerpt := bodyExcerpt(body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(serviceName, excerpt)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", serviceName, excerpt))
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(fmt.Sprintf("%s: %s", serviceName, excerpt))
	case resp.StatusCode == http.StatusServiceUnavailable:
		return apperrors.Unavailable(fmt.Sprintf("%s: %s", serviceName, excerpt))
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s server error (%d): %s", serviceName, resp.StatusCode, excerpt)
	default:
		return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, excerpt)
	}
}

// bodyExcerpt collapses the body into a short single-line excerpt so that
// HTML error pages do not flood logs.
func bodyExcerpt(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	const maxLen = 200
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}
