// Package server wraps the standard HTTP server with the lifecycle the
// application expects.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwell/inkwell-server/internal/model"
)

// HTTPServer wraps an http.Server with address and lifecycle methods.
type HTTPServer struct {
	server *http.Server
	addr   string
}

// NewHTTPServer creates an HTTPServer for the given server and address.
func NewHTTPServer(server *http.Server, addr string) *HTTPServer {
	return &HTTPServer{server: server, addr: addr}
}

// Start opens the listener through the security layer and serves until the
// server is stopped. A clean shutdown is not reported as an error.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests up
// to the context deadline.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
