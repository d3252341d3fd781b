// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package kdbx implements [codec.Codec] for KeePass KDBX databases.
package kdbx

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tobischo/gokeepasslib/v3"
	w "github.com/tobischo/gokeepasslib/v3/wrappers"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/secret"
	"github.com/MKhiriev/go-key/internal/vault"
)

var errForeignKey = errors.New("key was not derived by the kdbx codec")

// Codec reads and writes KDBX 3.1 and 4 databases.
type Codec struct{}

// New returns a KDBX codec.
func New() *Codec {
	return &Codec{}
}

var _ codec.Codec = (*Codec)(nil)

type key struct {
	mu        sync.Mutex
	creds     *gokeepasslib.DBCredentials
	destroyed bool
}

func (k *key) Destroy() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.destroyed {
		return
	}
	k.destroyed = true
	if k.creds != nil {
		secret.Wipe(k.creds.Passphrase)
		secret.Wipe(k.creds.Key)
		secret.Wipe(k.creds.Windows)
	}
	k.creds = nil
}

func (k *key) credentials() (*gokeepasslib.DBCredentials, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.destroyed {
		return nil, errors.New("key destroyed")
	}
	return k.creds, nil
}

// DeriveKey combines a password, a keyfile or both into a composite key.
func (c *Codec) DeriveKey(creds codec.Credentials) (codec.Key, error) {
	var (
		dbCreds *gokeepasslib.DBCredentials
		err     error
	)

	switch {
	case creds.Password != nil && len(creds.Keyfile) > 0:
		dbCreds, err = gokeepasslib.NewPasswordAndKeyDataCredentials(*creds.Password, creds.Keyfile)
	case creds.Password != nil:
		dbCreds = gokeepasslib.NewPasswordCredentials(*creds.Password)
	case len(creds.Keyfile) > 0:
		dbCreds, err = gokeepasslib.NewKeyDataCredentials(creds.Keyfile)
	default:
		return nil, fmt.Errorf("%w: neither password nor keyfile given", codec.ErrKeyDerivation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrKeyDerivation, err)
	}

	return &key{creds: dbCreds}, nil
}

func (c *Codec) unwrap(k codec.Key) (*gokeepasslib.DBCredentials, error) {
	kk, ok := k.(*key)
	if !ok || kk == nil {
		return nil, errForeignKey
	}
	return kk.credentials()
}

// Decode decrypts data and converts it to a vault. The decoded database is
// kept as the vault's origin so that Encode can preserve history, times and
// metadata the model does not carry.
func (c *Codec) Decode(data []byte, k codec.Key) (*vault.Vault, error) {
	creds, err := c.unwrap(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrDecode, err)
	}

	db := gokeepasslib.NewDatabase()
	db.Credentials = creds
	if err = gokeepasslib.NewDecoder(bytes.NewReader(data)).Decode(db); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrDecode, err)
	}
	if err = db.UnlockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("%w: unlock protected values: %w", codec.ErrDecode, err)
	}
	if db.Content == nil || db.Content.Root == nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrDecode, vault.ErrNoRoot)
	}

	o := &origin{db: db}
	root := o.rootGroup()

	v, err := vault.New(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrDecode, err)
	}
	v.Origin = o
	return v, nil
}

// Encode serialises v with the given key. Entries and groups that came
// from the decoded database keep their history, times and icons.
func (c *Codec) Encode(v *vault.Vault, k codec.Key) ([]byte, error) {
	creds, err := c.unwrap(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrEncode, err)
	}

	o, _ := v.Origin.(*origin)
	if o == nil {
		o = &origin{db: gokeepasslib.NewDatabase()}
		v.Origin = o
	}
	db := o.db
	db.Credentials = creds

	db.Content.Root.Groups = o.rebuild(v.Root())

	if err = db.LockProtectedEntries(); err != nil {
		return nil, fmt.Errorf("%w: lock protected values: %w", codec.ErrEncode, err)
	}

	var buf bytes.Buffer
	encErr := gokeepasslib.NewEncoder(&buf).Encode(db)

	// Bring the origin back to plaintext so the next Encode locks once.
	if err = db.UnlockProtectedEntries(); err != nil && encErr == nil {
		encErr = err
	}
	o.clearCurrentValues()

	if encErr != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrEncode, encErr)
	}
	return buf.Bytes(), nil
}

func toUUID(id gokeepasslib.UUID) uuid.UUID {
	return uuid.UUID(id)
}

func fromUUID(id uuid.UUID) gokeepasslib.UUID {
	return gokeepasslib.UUID(id)
}

func boolWrapper(b bool) w.BoolWrapper {
	return w.NewBoolWrapper(b)
}
