// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store moves raw vault bytes between go-key and the places a
// vault can live: the local filesystem, S3-compatible object stores and
// plain HTTP servers. It also keeps a local copy of remote vaults for use
// when the remote is unreachable.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-key/internal/locator"
)

// Backend reads and writes the encrypted bytes of one vault.
type Backend interface {
	// Fetch returns the full vault contents.
	Fetch(ctx context.Context) ([]byte, error)

	// Store replaces the vault contents with data.
	Store(ctx context.Context, data []byte) error

	// Remote reports whether the backend is reached over the network.
	// Only remote backends are backed by the cache.
	Remote() bool

	String() string
}

// Cache is a flat store of vault bytes keyed by cache name.
type Cache interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// Resolver maps a location to its backend.
type Resolver interface {
	Resolve(loc locator.Location) (Backend, error)
}
