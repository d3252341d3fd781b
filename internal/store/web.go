package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/utils"
)

// WebBackend keeps the vault behind a URL that answers GET and PUT, such
// as a WebDAV share.
type WebBackend struct {
	client *utils.HTTPClient
	url    string
}

// NewWebBackend returns a backend for url. Basic auth is sent when a
// username is configured.
func NewWebBackend(client *utils.HTTPClient, url string, cfg config.HTTP) *WebBackend {
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.Username != "" {
		client.SetBasicAuth(cfg.Username, cfg.Password)
	}
	return &WebBackend{client: client, url: url}
}

func (b *WebBackend) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		Get(b.url)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", b.url, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", b.url, ErrNotFound)
	case resp.IsError():
		return nil, fmt.Errorf("get %s: unexpected status %s", b.url, resp.Status())
	}
	return resp.Body(), nil
}

func (b *WebBackend) Store(ctx context.Context, data []byte) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data).
		Put(b.url)
	if err != nil {
		return fmt.Errorf("put %s: %w", b.url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("put %s: unexpected status %s", b.url, resp.Status())
	}
	return nil
}

func (b *WebBackend) Remote() bool { return true }

func (b *WebBackend) String() string { return b.url }
