// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package locator

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	schemeFile       = "file"
	schemeS3         = "s3"
	schemeS3Insecure = "s3+http"
	schemeHTTP       = "http"
	schemeHTTPS      = "https"
)

// Location is the closed set of places a vault can live in.
// Implementations: [FileLocation], [ObjectLocation], [WebLocation].
type Location interface {
	// CacheName is the last path segment of the vault URL. It keys the
	// local fallback cache.
	CacheName() string

	String() string

	isLocation()
}

// FileLocation is a vault on the local filesystem.
type FileLocation struct {
	Path string
}

// ObjectLocation is a vault stored as an object in an S3-compatible store.
type ObjectLocation struct {
	// Endpoint is host[:port] of the object store.
	Endpoint string
	Bucket   string
	Object   string
	// Secure selects https for the endpoint. It is false only for s3+http URLs.
	Secure bool
}

// WebLocation is a vault reachable by plain HTTP GET/PUT (WebDAV shares,
// static file servers with upload support).
type WebLocation struct {
	URL string
}

func (FileLocation) isLocation()   {}
func (ObjectLocation) isLocation() {}
func (WebLocation) isLocation()    {}

func (l FileLocation) CacheName() string   { return lastSegment(l.Path) }
func (l ObjectLocation) CacheName() string { return lastSegment(l.Object) }
func (l WebLocation) CacheName() string {
	u, err := url.Parse(l.URL)
	if err != nil {
		return lastSegment(l.URL)
	}
	return lastSegment(u.Path)
}

func (l FileLocation) String() string { return schemeFile + "://" + l.Path }

func (l ObjectLocation) String() string {
	scheme := schemeS3
	if !l.Secure {
		scheme = schemeS3Insecure
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, l.Endpoint, l.Bucket, l.Object)
}

func (l WebLocation) String() string { return l.URL }

// Parse converts rawURL into a Location.
//
// For file URLs the path is taken verbatim. For s3 URLs the first path
// segment is the bucket and the remainder is the object key; fewer than two
// segments is an error. http(s) URLs are kept whole.
func Parse(rawURL string) (Location, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: empty url", ErrInvalidURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case schemeFile:
		if u.Path == "" {
			return nil, fmt.Errorf("%w: file url %q has no path", ErrInvalidURL, rawURL)
		}
		return FileLocation{Path: u.Path}, nil

	case schemeS3, schemeS3Insecure:
		return parseObjectLocation(u)

	case schemeHTTP, schemeHTTPS:
		if u.Host == "" || lastSegment(u.Path) == "" {
			return nil, fmt.Errorf("%w: web url %q must name a file", ErrInvalidURL, rawURL)
		}
		return WebLocation{URL: u.String()}, nil

	case "":
		return nil, fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, rawURL)

	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}

func parseObjectLocation(u *url.URL) (Location, error) {
	if u.Host == "" {
		return nil, fmt.Errorf("%w: object store url has no endpoint", ErrInvalidURL)
	}

	bucket, object, ok := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if !ok || bucket == "" || object == "" {
		return nil, fmt.Errorf("%w: object store url needs /<bucket>/<object>, got %q", ErrInvalidURL, u.Path)
	}

	return ObjectLocation{
		Endpoint: u.Host,
		Bucket:   bucket,
		Object:   object,
		Secure:   !strings.EqualFold(u.Scheme, schemeS3Insecure),
	}, nil
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
