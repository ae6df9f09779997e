// Package wire reads HTTP/1.1 request lines and frames responses on a raw
// connection. Only the first line of a request is interpreted.
package wire

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Version is written on every status line.
const Version = "HTTP/1.1"

// DefaultMaxRequestLine bounds the request line when no limit is configured.
const DefaultMaxRequestLine = 2048

var (
	// ErrMalformedRequest is returned when the request line lacks a method
	// and a path.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrRequestTooLarge is returned when no line terminator arrives within
	// the configured limit.
	ErrRequestTooLarge = errors.New("request line too large")
)

// Request is the interpreted part of a client request.
type Request struct {
	Method string
	Path   string
	// Line is the request line as received, without the terminator.
	Line string
}

// Response is a status, an optional content type and a body of exactly
// ContentLength bytes.
type Response struct {
	Status        int
	ContentType   string
	ContentLength int64
	Body          io.Reader
}

// StatusLine returns e.g. "HTTP/1.1 404 Not Found".
func StatusLine(status int) string {
	return fmt.Sprintf("%s %d %s", Version, status, http.StatusText(status))
}
