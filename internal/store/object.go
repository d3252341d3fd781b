// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/locator"
)

// ObjectBackend keeps the vault as one object in an S3-compatible store.
type ObjectBackend struct {
	s3     s3iface.S3API
	loc    locator.ObjectLocation
	bucket string
	key    string
}

// NewObjectBackend returns a backend for loc using client.
func NewObjectBackend(client s3iface.S3API, loc locator.ObjectLocation) *ObjectBackend {
	return &ObjectBackend{
		s3:     client,
		loc:    loc,
		bucket: loc.Bucket,
		key:    loc.Object,
	}
}

// NewS3Client builds a path-style client for the endpoint of loc. Requests
// are signed with the configured static keys, or sent anonymously when no
// keys are configured.
func NewS3Client(loc locator.ObjectLocation, cfg config.S3) (s3iface.S3API, error) {
	awsCfg := aws.NewConfig().
		WithEndpoint(loc.Endpoint).
		WithRegion(cfg.Region).
		WithS3ForcePathStyle(true).
		WithDisableSSL(!loc.Secure)

	if cfg.AccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""))
	} else {
		awsCfg = awsCfg.WithCredentials(credentials.AnonymousCredentials)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session for %s: %w", loc.Endpoint, err)
	}
	return s3.New(sess), nil
}

// Fetch downloads the object. There is no retry; the caller falls back to
// the cache instead.
func (b *ObjectBackend) Fetch(ctx context.Context) ([]byte, error) {
	out, err := b.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", b, err)
	}
	return data, nil
}

// Store checks the bucket exists and uploads data as a single object.
func (b *ObjectBackend) Store(ctx context.Context, data []byte) error {
	_, err := b.s3.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err != nil {
		err = toSentinelErrors(err)
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s: %w", b.bucket, ErrBucketMissing)
		}
		return fmt.Errorf("head bucket %s: %w", b.bucket, err)
	}

	_, err = b.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(b.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", b, toSentinelErrors(err))
	}
	return nil
}

func (b *ObjectBackend) Remote() bool { return true }

func (b *ObjectBackend) String() string { return b.loc.String() }

// toSentinelErrors maps S3 API failures onto package errors.
// See https://docs.aws.amazon.com/AmazonS3/latest/API/ErrorResponses.html
func toSentinelErrors(err error) error {
	var reqErr awserr.RequestFailure
	if !errors.As(err, &reqErr) {
		return err
	}

	if reqErr.StatusCode() == http.StatusNotFound {
		switch reqErr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound": // NotFound is what HEAD requests and minio report
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return err
}
