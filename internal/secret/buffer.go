// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secret holds sensitive bytes that must not outlive their use.
//
// A [Buffer] owns a private copy of the plaintext. Access goes through
// [Buffer.Use], which scopes the plaintext to a callback, or [Buffer.Reveal]
// for the rare display path that needs a string. [Buffer.Destroy] overwrites
// the bytes with zeros; after that every accessor sees an empty value.
package secret

import (
	"runtime"
	"sync"
)

const redacted = "[REDACTED]"

// Buffer is a zeroable container for a protected value.
// The zero value is an empty, usable buffer.
type Buffer struct {
	mu        sync.Mutex
	data      []byte
	destroyed bool
}

// New copies b into a fresh Buffer and wipes b.
func New(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	Wipe(b)
	return &Buffer{data: data}
}

// FromString copies s into a fresh Buffer. The string itself cannot be
// wiped; callers should drop their reference to it.
func FromString(s string) *Buffer {
	data := make([]byte, len(s))
	copy(data, s)
	return &Buffer{data: data}
}

// Use calls fn with the plaintext. The slice is only valid for the duration
// of the call and must not be retained.
func (b *Buffer) Use(fn func(plain []byte) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.data)
}

// Reveal returns the plaintext as a string.
func (b *Buffer) Reveal() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

// Len returns the plaintext length in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Destroy zeroes the plaintext and releases it. Calling Destroy more than
// once is a no-op.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return
	}
	Wipe(b.data)
	b.data = nil
	b.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (b *Buffer) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// String keeps the plaintext out of logs and fmt output.
func (b *Buffer) String() string { return redacted }

// GoString keeps the plaintext out of %#v output.
func (b *Buffer) GoString() string { return redacted }

// MarshalText keeps the plaintext out of encoders that honour TextMarshaler.
func (b *Buffer) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
