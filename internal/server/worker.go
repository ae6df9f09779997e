package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/f4ah6o/staticd-go/internal/resolver"
	"github.com/f4ah6o/staticd-go/internal/wire"
)

const (
	// lingerLimit and lingerTimeout bound how much unread request data is
	// drained after the write side is shut down.
	lingerLimit   = 64 << 10
	lingerTimeout = 500 * time.Millisecond
)

// worker answers the single request arriving on one connection.
type worker struct {
	srv  *Server
	conn net.Conn
	rr   *wire.RequestReader
	req  *wire.Request
	file *resolver.File
	body *os.File
	res  *wire.Response

	sent    int64
	aborted error
}

type stateFunc func(*worker) stateFunc

func newWorker(s *Server, conn net.Conn) *worker {
	return &worker{
		srv:  s,
		conn: conn,
		rr:   wire.NewRequestReader(conn, s.cfg.MaxRequestLine),
	}
}

// start runs the state machine to completion. The connection is closed on
// every path.
func (w *worker) start() {
	for state := readRequest; state != nil; {
		state = state(w)
	}
}

func (w *worker) respondWith(status int) stateFunc {
	w.res = wire.ErrorResponse(status)
	return respond
}

// state funcs

func readRequest(w *worker) stateFunc {
	if d := w.srv.cfg.ReadTimeout.Std(); d > 0 {
		w.conn.SetReadDeadline(time.Now().Add(d))
	}
	req, err := w.rr.ReadRequest()
	if err != nil {
		w.aborted = err
		return closeConn
	}
	w.req = req
	return parsed
}

func parsed(w *worker) stateFunc {
	if w.req.Method != http.MethodGet {
		return w.respondWith(http.StatusNotImplemented)
	}
	return resolve
}

func resolve(w *worker) stateFunc {
	f, err := w.srv.resolver.Resolve(w.req.Path)
	switch {
	case err == nil:
		w.file = f
		return found
	case errors.Is(err, resolver.ErrNotFound):
		return w.respondWith(http.StatusNotFound)
	case errors.Is(err, resolver.ErrForbidden):
		return w.respondWith(http.StatusForbidden)
	default:
		w.srv.logger.Printf("%s resolve %q: %v", w.remote(), w.req.Path, err)
		return w.respondWith(http.StatusInternalServerError)
	}
}

func found(w *worker) stateFunc {
	f, err := os.Open(w.file.Path)
	if err != nil {
		w.srv.logger.Printf("%s open %s: %v", w.remote(), w.file.Name, err)
		return w.respondWith(http.StatusInternalServerError)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		w.srv.logger.Printf("%s stat %s: %v", w.remote(), w.file.Name, err)
		return w.respondWith(http.StatusInternalServerError)
	}
	if info.IsDir() {
		f.Close()
		return w.respondWith(http.StatusForbidden)
	}

	w.body = f
	w.res = &wire.Response{
		Status:        http.StatusOK,
		ContentType:   w.file.ContentType,
		ContentLength: info.Size(),
		Body:          f,
	}
	return respond
}

func respond(w *worker) stateFunc {
	if d := w.srv.cfg.WriteTimeout.Std(); d > 0 {
		w.conn.SetWriteDeadline(time.Now().Add(d))
	}
	n, err := wire.WriteResponse(w.conn, w.res)
	w.sent = n
	if err != nil {
		w.srv.logger.Printf("%s write response: %v", w.remote(), err)
	}
	if w.body != nil {
		w.body.Close()
		w.body = nil
	}
	return closeConn
}

func closeConn(w *worker) stateFunc {
	w.linger()
	w.conn.Close()

	if w.res != nil {
		w.srv.access.request(w.remote(), w.req.Line, w.res.Status, w.sent)
	} else {
		w.srv.access.abort(w.remote(), describeAbort(w.aborted))
	}
	return nil
}

// linger half-closes the connection and drains what the client still sends,
// so closing with unread data does not reset the connection under the
// response.
func (w *worker) linger() {
	cw, ok := w.conn.(interface{ CloseWrite() error })
	if !ok {
		return
	}
	if err := cw.CloseWrite(); err != nil {
		return
	}
	w.conn.SetReadDeadline(time.Now().Add(lingerTimeout))
	io.CopyN(io.Discard, w.conn, lingerLimit)
}

func (w *worker) remote() string {
	if a := w.conn.RemoteAddr(); a != nil {
		return a.String()
	}
	return "-"
}

func describeAbort(err error) string {
	var ne net.Error
	switch {
	case err == nil:
		return "closed"
	case errors.Is(err, io.EOF):
		return "closed before request line"
	case errors.As(err, &ne) && ne.Timeout():
		return "read timeout"
	case errors.Is(err, wire.ErrMalformedRequest), errors.Is(err, wire.ErrRequestTooLarge):
		return err.Error()
	default:
		return fmt.Sprintf("read error: %v", err)
	}
}
