package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outbound request.
const UserAgent = "go-key"

// HTTPClient wraps resty.Client so backends share one set of defaults.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with go-key defaults and no
// retries.
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetRetryCount(0)
	return &HTTPClient{Client: c}
}
