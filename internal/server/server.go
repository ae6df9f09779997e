// Package server accepts connections and answers one static file request on
// each of them.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/f4ah6o/staticd-go/internal/config"
	"github.com/f4ah6o/staticd-go/internal/resolver"
)

const maxAcceptDelay = time.Second

// Server serves files from a single root directory.
type Server struct {
	cfg      *config.Config
	resolver *resolver.Resolver
	logger   *log.Logger
	access   *accessLog
}

// New validates cfg and prepares a Server. A nil logger uses log.Default().
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	res, err := resolver.New(cfg.Root, cfg.DefaultDocument)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:      cfg,
		resolver: res,
		logger:   logger,
		access:   newAccessLog(logger, cfg.Color),
	}, nil
}

// Root returns the canonical serving root.
func (s *Server) Root() string {
	return s.resolver.Root()
}

// Listen binds the configured port on all interfaces.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := listenTCP(s.cfg.Port, s.cfg.Backlog)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	return ln, nil
}

// ListenAndServe binds the listener and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done or ln fails, handling
// each connection in its own goroutine. It closes ln and returns only after
// every handler has finished. Cancellation is a clean shutdown and returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var handlers errgroup.Group
	defer handlers.Wait()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	var delay time.Duration
	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			// Accept errors such as EMFILE clear up as handlers finish.
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else if delay *= 2; delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			s.logger.Printf("accept error: %v; retrying in %v", err, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		delay = 0

		handlers.Go(func() error {
			s.handle(c)
			return nil
		})
	}
}

func (s *Server) handle(c net.Conn) {
	w := newWorker(s, c) // worker takes the ownership of c
	w.start()
}
