package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. All handlers
// are in-memory only, so the read/write timeouts can stay tight.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}
