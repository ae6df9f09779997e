//go:build !unix

package server

import (
	"fmt"
	"net"
)

// listenTCP falls back to net.Listen, which picks the platform's backlog.
func listenTCP(port, _ int) (net.Listener, error) {
	return net.Listen("tcp4", fmt.Sprintf(":%d", port))
}
