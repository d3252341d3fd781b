package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/spf13/afero"

	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/utils"
)

// S3ClientFunc builds an S3 client for a location.
type S3ClientFunc func(loc locator.ObjectLocation, cfg config.S3) (s3iface.S3API, error)

// Option configures a [BackendResolver].
type Option func(*BackendResolver)

// WithFs replaces the filesystem used by file backends.
func WithFs(fsys afero.Fs) Option {
	return func(r *BackendResolver) {
		r.fs = fsys
	}
}

// WithS3Client replaces the S3 client constructor.
func WithS3Client(fn S3ClientFunc) Option {
	return func(r *BackendResolver) {
		r.newS3 = fn
	}
}

// BackendResolver builds backends from locations and storage settings.
type BackendResolver struct {
	cfg   config.Storage
	fs    afero.Fs
	newS3 S3ClientFunc
}

// NewResolver returns a resolver backed by the OS filesystem and the real
// S3 client unless overridden by options.
func NewResolver(cfg config.Storage, options ...Option) *BackendResolver {
	r := &BackendResolver{
		cfg:   cfg,
		fs:    afero.NewOsFs(),
		newS3: NewS3Client,
	}
	for _, apply := range options {
		apply(r)
	}
	return r
}

func (r *BackendResolver) Resolve(loc locator.Location) (Backend, error) {
	switch l := loc.(type) {
	case locator.FileLocation:
		return NewFileBackend(r.fs, l.Path), nil

	case locator.ObjectLocation:
		client, err := r.newS3(l, r.cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
		}
		return NewObjectBackend(client, l), nil

	case locator.WebLocation:
		return NewWebBackend(utils.NewHTTPClient(), l.URL, r.cfg.HTTP), nil
	}

	return nil, fmt.Errorf("unsupported location %T", loc)
}

// NewCache returns the fallback cache for these settings.
func NewCache(cfg config.Storage, fsys afero.Fs) *FileCache {
	return NewFileCache(fsys, cfg.CacheDir)
}
