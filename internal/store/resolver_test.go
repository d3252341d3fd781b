package store

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/locator"
)

func TestResolver_Resolve(t *testing.T) {
	var gotCfg config.S3
	fake := newFakeS3()

	r := NewResolver(config.Storage{S3: config.S3{Region: "eu-west-1"}},
		WithFs(afero.NewMemMapFs()),
		WithS3Client(func(loc locator.ObjectLocation, cfg config.S3) (s3iface.S3API, error) {
			gotCfg = cfg
			return fake, nil
		}),
	)

	b, err := r.Resolve(locator.FileLocation{Path: "/v.kdbx"})
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	b, err = r.Resolve(testObjectLoc)
	require.NoError(t, err)
	assert.IsType(t, &ObjectBackend{}, b)
	assert.Equal(t, "eu-west-1", gotCfg.Region)

	b, err = r.Resolve(locator.WebLocation{URL: "https://dav.example.com/v.kdbx"})
	require.NoError(t, err)
	assert.IsType(t, &WebBackend{}, b)

	_, err = r.Resolve(nil)
	assert.Error(t, err)
}

func TestResolver_S3ClientError(t *testing.T) {
	r := NewResolver(config.Storage{}, WithS3Client(func(locator.ObjectLocation, config.S3) (s3iface.S3API, error) {
		return nil, errors.New("bad endpoint")
	}))

	_, err := r.Resolve(testObjectLoc)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
