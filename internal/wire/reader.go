package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RequestReader reads request lines from a connection. Reads are bounded by
// the size of its buffer.
type RequestReader struct {
	r *bufio.Reader
}

// NewRequestReader returns a reader accepting request lines of at most limit
// bytes including the terminator. A non-positive limit selects
// DefaultMaxRequestLine.
func NewRequestReader(r io.Reader, limit int) *RequestReader {
	if limit <= 0 {
		limit = DefaultMaxRequestLine
	}
	return &RequestReader{r: bufio.NewReaderSize(r, limit)}
}

// ReadRequest reads and parses the request line.
//
// A line cut short by EOF is still parsed, since some clients send the line
// without a terminator and half-close. Lines longer than the limit yield
// ErrRequestTooLarge. A client that sends a partial line and keeps the
// connection open blocks ReadRequest until the underlying reader fails, so
// callers reading from a network connection must set a read deadline.
func (rr *RequestReader) ReadRequest() (*Request, error) {
	line, err := rr.readLine()
	if err != nil {
		return nil, err
	}
	return ParseRequestLine(line)
}

func (rr *RequestReader) readLine() (string, error) {
	l, err := rr.r.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, bufio.ErrBufferFull):
		return "", ErrRequestTooLarge
	case errors.Is(err, io.EOF) && len(l) > 0:
	default:
		return "", err
	}
	return strings.TrimRight(string(l), "\r\n"), nil
}

// ParseRequestLine extracts the method and path from a request line. The
// version and anything after it are ignored.
func ParseRequestLine(line string) (*Request, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequest, line)
	}
	return &Request{
		Method: fields[0],
		Path:   fields[1],
		Line:   line,
	}, nil
}
