package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/store"
	"github.com/MKhiriev/go-key/internal/vault"
)

type vaultWriter struct {
	resolver store.Resolver
	codec    codec.Codec
	logger   *logger.Logger
}

// NewVaultWriter returns a writer. Writes go straight to the backend with
// no retry and leave the local cache untouched.
func NewVaultWriter(resolver store.Resolver, c codec.Codec, log *logger.Logger) VaultWriter {
	return &vaultWriter{resolver: resolver, codec: c, logger: log}
}

func (w *vaultWriter) Store(ctx context.Context, loc locator.Location, v *vault.Vault, key codec.Key) error {
	data, err := w.codec.Encode(v, key)
	if err != nil {
		return ensureWrapped(err, codec.ErrEncode)
	}

	backend, err := w.resolver.Resolve(loc)
	if err != nil {
		return ensureWrapped(err, store.ErrBackendUnavailable)
	}

	if err = backend.Store(ctx, data); err != nil {
		return fmt.Errorf("%w: store %s: %w", store.ErrBackendUnavailable, backend, err)
	}

	w.logger.Debug().
		Str("backend", backend.String()).
		Int("bytes", len(data)).
		Msg("vault stored")

	return nil
}
