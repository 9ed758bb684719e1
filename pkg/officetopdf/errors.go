// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package officetopdf

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrClientClosed is returned by operations attempted after Client.Close.
	ErrClientClosed = errors.New("office-to-pdf: client is closed")

	// ErrInvalidBaseURL is returned by New when the base URL cannot be used.
	ErrInvalidBaseURL = errors.New("office-to-pdf: invalid base URL")
)

// maxErrorBody caps how much of the response body Error() echoes.
const maxErrorBody = 512

// HTTPStatusError reports a non-2xx response from the conversion service.
// Body holds the complete raw response body.
type HTTPStatusError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if len(body) == 0 {
		return fmt.Sprintf("office-to-pdf: server returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("office-to-pdf: server returned HTTP %d: %s", e.StatusCode, body)
}

// IsHTTPStatus reports whether err is an *HTTPStatusError with the given code.
func IsHTTPStatus(err error, code int) bool {
	var se *HTTPStatusError
	return errors.As(err, &se) && se.StatusCode == code
}
