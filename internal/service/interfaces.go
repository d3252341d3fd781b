// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/vault"
)

// VaultLoader opens a vault from its location.
type VaultLoader interface {
	// Load derives the key, fetches the bytes (falling back to the local
	// cache for remote backends) and decodes them. The returned key is
	// needed to write the vault back and must be destroyed by the caller.
	Load(ctx context.Context, loc locator.Location, creds codec.Credentials) (*vault.Vault, codec.Key, error)
}

// VaultWriter encodes a vault and stores it at its location.
type VaultWriter interface {
	Store(ctx context.Context, loc locator.Location, v *vault.Vault, key codec.Key) error
}

// Reloader re-reads a vault from its backend.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadJob periodically calls a Reloader in the background.
type ReloadJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
