package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired reports that the server rejected the bearer token. The
// client has already discarded the stored token by the time this is returned;
// only the session manager reacts beyond that.
var ErrSessionExpired = errors.New("session expired")

// APIError is a server-rejected operation carrying the server's own message
// when it provided one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("el servidor respondió con estado %d", e.StatusCode)
}

// ErrorMessage resolves the text a screen should surface for err: the
// server-provided message when available, otherwise the given fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
