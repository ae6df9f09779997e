package wire

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// WriteResponse writes the status line, Content-Type (when set),
// Content-Length, a blank line and then exactly ContentLength body bytes.
// It returns the number of body bytes written. A body shorter than
// ContentLength is an error; the caller must not keep using the connection.
func WriteResponse(w io.Writer, res *Response) (int64, error) {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\r\n", StatusLine(res.Status))
	if res.ContentType != "" {
		fmt.Fprintf(bw, "Content-Type: %s\r\n", res.ContentType)
	}
	fmt.Fprintf(bw, "Content-Length: %d\r\n", res.ContentLength)
	fmt.Fprintf(bw, "\r\n")

	var n int64
	if res.ContentLength > 0 {
		if res.Body == nil {
			return 0, fmt.Errorf("missing body for %d bytes", res.ContentLength)
		}
		var err error
		n, err = io.CopyN(bw, res.Body, res.ContentLength)
		if err != nil {
			bw.Flush()
			return n, fmt.Errorf("write body: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush response: %w", err)
	}
	return n, nil
}

// ErrorResponse returns a text/html response carrying the fixed error page
// for status.
func ErrorResponse(status int) *Response {
	page := ErrorPage(status)
	return &Response{
		Status:        status,
		ContentType:   "text/html",
		ContentLength: int64(len(page)),
		Body:          bytes.NewReader(page),
	}
}
