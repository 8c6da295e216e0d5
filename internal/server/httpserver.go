package server

import (
	"net/http"
	"time"
)

// NewHTTPServer builds an HTTP server with the project's timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
