// Package server runs the local API: it serves the HTTP router, keeps the
// vault fresh with a reload job and shuts both down gracefully on a stop
// signal.
package server
