// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrTokenExpired is returned for a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token is expired")

	// ErrInvalidToken covers every other token validation failure.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRequestBody is returned when a JSON body cannot be decoded
	// or misses a required field.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidPathParam is returned when a path segment is not valid
	// percent-encoding.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	errMethodNotAllowed = errors.New("method not allowed")
)
