// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package otp derives time-based one-time passwords from stored secrets.
package otp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrInvalidSecret is returned when a stored value cannot be read as a TOTP
// secret.
var ErrInvalidSecret = errors.New("invalid otp secret")

// Defaults applied to raw secrets and to non-otpauth URLs.
const (
	DefaultPeriod = 30
	DefaultSkew   = 1
	DefaultDigits = otp.DigitsSix
)

// Engine computes TOTP codes.
type Engine struct {
	now func() time.Time
}

// New returns an engine that uses the wall clock.
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock returns an engine with a custom clock.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// params is everything needed to generate a code.
type params struct {
	secret string
	opts   totp.ValidateOpts
}

// DeriveCurrent returns the code valid at the current time.
//
// The stored value may be an otpauth:totp URL, with or without the
// slashes, whose parameters are used as given; any other URL with a secret
// query parameter, whose secret is used with default parameters; or a bare
// base32 secret (SHA-1, 6 digits, 30 second period).
func (e *Engine) DeriveCurrent(stored string) (string, error) {
	p, err := extract(stored)
	if err != nil {
		return "", err
	}

	code, err := totp.GenerateCodeCustom(p.secret, e.now(), p.opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}
	return code, nil
}

func defaultOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    DefaultPeriod,
		Skew:      DefaultSkew,
		Digits:    DefaultDigits,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func extract(stored string) (params, error) {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return params{}, fmt.Errorf("%w: empty", ErrInvalidSecret)
	}

	if strings.HasPrefix(strings.ToLower(stored), keyURIPrefix) {
		return fromKeyURL(stored)
	}
	if !strings.Contains(stored, "://") {
		return params{secret: normalize(stored), opts: defaultOpts()}, nil
	}

	u, err := url.Parse(stored)
	if err != nil {
		return params{}, fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}

	s := u.Query().Get("secret")
	if s == "" {
		return params{}, fmt.Errorf("%w: url has no secret parameter", ErrInvalidSecret)
	}
	return params{secret: normalize(s), opts: defaultOpts()}, nil
}

const keyURIPrefix = "otpauth:"

func fromKeyURL(stored string) (params, error) {
	// otpauth:totp/... parses with an empty host, and the type is read from
	// the host.
	rest := stored[len(keyURIPrefix):]
	if !strings.HasPrefix(rest, "//") {
		stored = keyURIPrefix + "//" + rest
	}

	key, err := otp.NewKeyFromURL(stored)
	if err != nil {
		return params{}, fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}
	if key.Type() != "totp" {
		return params{}, fmt.Errorf("%w: unsupported otp type %q", ErrInvalidSecret, key.Type())
	}
	if key.Secret() == "" {
		return params{}, fmt.Errorf("%w: url has no secret parameter", ErrInvalidSecret)
	}

	opts := defaultOpts()
	if period := key.Period(); period > 0 {
		opts.Period = uint(period)
	}
	if digits := key.Digits(); digits > 0 {
		opts.Digits = digits
	}
	opts.Algorithm = key.Algorithm()

	return params{secret: normalize(key.Secret()), opts: opts}, nil
}

// normalize drops the spacing and padding users paste along with secrets.
func normalize(s string) string {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	return strings.TrimRight(s, "=")
}
