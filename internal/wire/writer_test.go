package wire

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func TestWriteResponse(t *testing.T) {
	body := "FooBar"
	res := &Response{
		Status:        http.StatusOK,
		ContentType:   "text/plain",
		ContentLength: int64(len(body)),
		Body:          strings.NewReader(body),
	}
	w := new(bytes.Buffer)
	n, err := WriteResponse(w, res)
	if err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}
	if n != int64(len(body)) {
		t.Errorf("WriteResponse() wrote %d body bytes, want %d", n, len(body))
	}

	want := strings.Join([]string{
		"HTTP/1.1 200 OK\r\n",
		"Content-Type: text/plain\r\n",
		"Content-Length: 6\r\n",
		"\r\n",
		"FooBar",
	}, "")
	if got := w.String(); got != want {
		t.Errorf("WriteResponse() = %q, want %q", got, want)
	}
}

func TestWriteResponseWithoutContentType(t *testing.T) {
	w := new(bytes.Buffer)
	if _, err := WriteResponse(w, &Response{Status: http.StatusOK}); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}
	want := "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"
	if got := w.String(); got != want {
		t.Errorf("WriteResponse() = %q, want %q", got, want)
	}
}

func TestWriteResponseStopsAtContentLength(t *testing.T) {
	w := new(bytes.Buffer)
	res := &Response{
		Status:        http.StatusOK,
		ContentLength: 3,
		Body:          strings.NewReader("abcdef"),
	}
	if _, err := WriteResponse(w, res); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}
	if !strings.HasSuffix(w.String(), "\r\n\r\nabc") {
		t.Errorf("WriteResponse() = %q, want body %q", w.String(), "abc")
	}
}

func TestWriteResponseShortBody(t *testing.T) {
	w := new(bytes.Buffer)
	res := &Response{
		Status:        http.StatusOK,
		ContentLength: 10,
		Body:          strings.NewReader("abc"),
	}
	n, err := WriteResponse(w, res)
	if err == nil {
		t.Fatal("WriteResponse() with short body should fail")
	}
	if n != 3 {
		t.Errorf("WriteResponse() wrote %d body bytes, want 3", n)
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		status     int
		wantStatus string
		wantBody   string
	}{
		{http.StatusNotFound, "HTTP/1.1 404 Not Found", "<html><body><h1>404 Not Found</h1></body></html>"},
		{http.StatusForbidden, "HTTP/1.1 403 Forbidden", "<html><body><h1>403 Forbidden</h1></body></html>"},
		{http.StatusInternalServerError, "HTTP/1.1 500 Internal Server Error", "<html><body><h1>500 Internal Server Error</h1></body></html>"},
		{http.StatusNotImplemented, "HTTP/1.1 501 Not Implemented", "<html><body><h1>501 Not Implemented</h1></body></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStatus, func(t *testing.T) {
			w := new(bytes.Buffer)
			if _, err := WriteResponse(w, ErrorResponse(tt.status)); err != nil {
				t.Fatalf("WriteResponse() error = %v", err)
			}
			want := tt.wantStatus + "\r\n" +
				"Content-Type: text/html\r\n" +
				"Content-Length: " + strconv.Itoa(len(tt.wantBody)) + "\r\n" +
				"\r\n" +
				tt.wantBody
			if got := w.String(); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestErrorPagePrerendered(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError, http.StatusNotImplemented} {
		a := ErrorPage(status)
		b := ErrorPage(status)
		if &a[0] != &b[0] {
			t.Errorf("ErrorPage(%d) rendered on demand, want the page built at init", status)
		}
	}

	a := ErrorPage(http.StatusBadGateway)
	b := ErrorPage(http.StatusBadGateway)
	if want := "<html><body><h1>502 Bad Gateway</h1></body></html>"; string(a) != want {
		t.Errorf("ErrorPage(502) = %q, want %q", a, want)
	}
	if &a[0] == &b[0] {
		t.Error("ErrorPage(502) shares a buffer between calls")
	}
}
