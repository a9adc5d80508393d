package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("TALLY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	shutdown := 10 * time.Second
	if raw := os.Getenv("TALLY_SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			shutdown = d
		}
	}

	return Server{
		Addr:            addr,
		ShutdownTimeout: shutdown,
	}
}
