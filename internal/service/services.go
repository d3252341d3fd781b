package service

import (
	"context"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/codec/kdbx"
	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/otp"
	"github.com/MKhiriev/go-key/internal/store"
)

// Services wires the vault pipeline together.
type Services struct {
	Loader VaultLoader
	Writer VaultWriter
	OTP    *otp.Engine
	Logger *logger.Logger
}

// NewServices builds the production pipeline: OS filesystem, real S3 and
// HTTP clients, the KDBX codec and the on-disk fallback cache.
func NewServices(cfg config.Storage, log *logger.Logger) *Services {
	resolver := store.NewResolver(cfg)
	cache := store.NewCache(cfg, afero.NewOsFs())
	c := kdbx.New()

	return &Services{
		Loader: NewVaultLoader(resolver, cache, c, log),
		Writer: NewVaultWriter(resolver, c, log),
		OTP:    otp.New(),
		Logger: log,
	}
}

// Open loads the vault at loc.
func (s *Services) Open(ctx context.Context, loc locator.Location, creds codec.Credentials) (*Handle, error) {
	return OpenHandle(ctx, s.Loader, s.Writer, s.OTP, loc, creds, s.Logger)
}
