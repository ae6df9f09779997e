package wire

import (
	"bytes"
	"fmt"
	"net/http"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pages holds the bodies for the statuses the server sends. It is filled at
// init and only read afterwards.
var pages = renderPages(
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusInternalServerError,
	http.StatusNotImplemented,
)

// ErrorPage returns the body sent with an error status, e.g.
// "<html><body><h1>404 Not Found</h1></body></html>". Pages for the statuses
// the server sends are rendered once at startup and shared, so the returned
// slice must not be modified. Any other status is rendered on each call.
func ErrorPage(status int) []byte {
	if p, ok := pages[status]; ok {
		return p
	}
	return renderErrorPage(status)
}

func renderPages(statuses ...int) map[int][]byte {
	m := make(map[int][]byte, len(statuses))
	for _, s := range statuses {
		m[s] = renderErrorPage(s)
	}
	return m
}

func renderErrorPage(status int) []byte {
	h1 := element(atom.H1)
	h1.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf("%d %s", status, http.StatusText(status))})
	body := element(atom.Body)
	body.AppendChild(h1)
	root := element(atom.Html)
	root.AppendChild(body)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		// Rendering into a bytes.Buffer only fails on malformed trees.
		panic(err)
	}
	return buf.Bytes()
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
