package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/otp"
	"github.com/MKhiriev/go-key/internal/service"
	"github.com/MKhiriev/go-key/internal/store"
	"github.com/MKhiriev/go-key/internal/vault"
)

// errorStatuses is checked in order; the first match wins. Backend errors
// come first because a failed write wraps the underlying store error.
var errorStatuses = []struct {
	err    error
	status int
}{
	{store.ErrBucketMissing, http.StatusBadGateway},
	{store.ErrBackendUnavailable, http.StatusBadGateway},
	{store.ErrNotFound, http.StatusBadGateway},
	{codec.ErrEncode, http.StatusInternalServerError},

	{service.ErrHandleClosed, http.StatusServiceUnavailable},
	{service.ErrNoOTP, http.StatusNotFound},
	{vault.ErrNotFound, http.StatusNotFound},
	{vault.ErrUnknownFormat, http.StatusBadRequest},
	{otp.ErrInvalidSecret, http.StatusUnprocessableEntity},

	{ErrInvalidRequestBody, http.StatusBadRequest},
	{ErrInvalidPathParam, http.StatusBadRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrTokenExpired, http.StatusUnauthorized},
	{ErrInvalidToken, http.StatusUnauthorized},
	{errMethodNotAllowed, http.StatusMethodNotAllowed},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
