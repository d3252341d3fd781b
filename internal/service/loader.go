// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/store"
	"github.com/MKhiriev/go-key/internal/vault"
)

type vaultLoader struct {
	resolver store.Resolver
	cache    store.Cache
	codec    codec.Codec
	logger   *logger.Logger
}

// NewVaultLoader returns a loader. cache may be nil, which disables the
// fallback for remote backends.
func NewVaultLoader(resolver store.Resolver, cache store.Cache, c codec.Codec, log *logger.Logger) VaultLoader {
	return &vaultLoader{resolver: resolver, cache: cache, codec: c, logger: log}
}

func (l *vaultLoader) Load(ctx context.Context, loc locator.Location, creds codec.Credentials) (*vault.Vault, codec.Key, error) {
	key, err := l.codec.DeriveKey(creds)
	if err != nil {
		return nil, nil, ensureWrapped(err, codec.ErrKeyDerivation)
	}

	data, fromCache, err := l.fetch(ctx, loc)
	if err != nil {
		key.Destroy()
		return nil, nil, err
	}

	v, err := l.codec.Decode(data, key)
	if err != nil {
		key.Destroy()
		return nil, nil, ensureWrapped(err, codec.ErrDecode)
	}
	v.FromCache = fromCache

	l.logger.Debug().
		Str("location", loc.String()).
		Int("nodes", v.Len()).
		Bool("from_cache", fromCache).
		Msg("vault loaded")

	return v, key, nil
}

// fetch reads the vault bytes. Remote backends write successful reads
// through to the cache and fall back to it when the read fails; fromCache
// reports the fallback.
func (l *vaultLoader) fetch(ctx context.Context, loc locator.Location) (data []byte, fromCache bool, err error) {
	backend, err := l.resolver.Resolve(loc)
	if err != nil {
		return nil, false, ensureWrapped(err, store.ErrBackendUnavailable)
	}

	data, err = backend.Fetch(ctx)
	if err == nil {
		if backend.Remote() {
			l.writeThrough(loc.CacheName(), data)
		}
		return data, false, nil
	}

	fetchErr := fmt.Errorf("%w: fetch %s: %w", store.ErrBackendUnavailable, backend, err)
	if !backend.Remote() || l.cache == nil {
		return nil, false, fetchErr
	}

	l.logger.Warn().
		Err(err).
		Str("backend", backend.String()).
		Msg("remote fetch failed, trying local cache")

	cached, cacheErr := l.cache.Read(loc.CacheName())
	if cacheErr != nil {
		return nil, false, errors.Join(fetchErr, fmt.Errorf("read cache: %w", cacheErr))
	}

	l.logger.Info().
		Str("cache_name", loc.CacheName()).
		Msg("using cached copy of vault")

	return cached, true, nil
}

// writeThrough never fails the load; a stale or missing cache only matters
// when the remote is down.
func (l *vaultLoader) writeThrough(name string, data []byte) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Write(name, data); err != nil {
		l.logger.Warn().
			Err(err).
			Str("cache_name", name).
			Msg("failed to update local cache")
	}
}

func ensureWrapped(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
