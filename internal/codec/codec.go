// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec defines the boundary between raw vault bytes and the
// in-memory [vault.Vault] model.
package codec

//go:generate mockgen -source=codec.go -destination=../mock/codec_mock.go -package=mock

import (
	"github.com/MKhiriev/go-key/internal/vault"
)

// Credentials are the user-supplied secrets a key is derived from.
// At least one of Password and Keyfile must be set.
type Credentials struct {
	Password *string
	Keyfile  []byte
}

// Empty reports whether no credential material was supplied.
func (c Credentials) Empty() bool {
	return c.Password == nil && len(c.Keyfile) == 0
}

// Key is an opaque derived key. Destroy zeroes the key material; a
// destroyed key must not be passed back to the codec.
type Key interface {
	Destroy()
}

// Codec turns encrypted bytes into a vault and back.
type Codec interface {
	DeriveKey(creds Credentials) (Key, error)
	Decode(data []byte, key Key) (*vault.Vault, error)
	Encode(v *vault.Vault, key Key) ([]byte, error)
}
