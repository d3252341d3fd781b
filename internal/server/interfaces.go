package server

import "context"

// Server defines the lifecycle contract of the local API server.
type Server interface {
	// Run serves requests until ctx is cancelled, a stop signal arrives or
	// the listener fails. It returns nil after a graceful shutdown.
	Run(ctx context.Context) error

	// Addr reports the bound listener address once Run has started.
	Addr() string
}
