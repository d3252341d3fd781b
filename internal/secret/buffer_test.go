// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package secret

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WipesSource(t *testing.T) {
	src := []byte("hunter2")
	b := New(src)

	assert.Equal(t, make([]byte, 7), src)
	assert.Equal(t, "hunter2", b.Reveal())
	assert.Equal(t, 7, b.Len())
}

func TestUse_ScopedAccess(t *testing.T) {
	b := FromString("s3cr3t")

	var seen string
	err := b.Use(func(plain []byte) error {
		seen = string(plain)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", seen)

	boom := errors.New("boom")
	assert.ErrorIs(t, b.Use(func([]byte) error { return boom }), boom)
}

func TestDestroy_ZeroesBackingArray(t *testing.T) {
	b := FromString("password")

	var backing []byte
	_ = b.Use(func(plain []byte) error {
		backing = plain
		return nil
	})

	b.Destroy()

	assert.Equal(t, make([]byte, 8), backing)
	assert.True(t, b.Destroyed())
	assert.Equal(t, "", b.Reveal())
	assert.Zero(t, b.Len())

	assert.NotPanics(t, b.Destroy)
}

func TestBuffer_NeverFormatsPlaintext(t *testing.T) {
	b := FromString("top-secret")

	assert.Equal(t, redacted, fmt.Sprintf("%v", b))
	assert.Equal(t, redacted, fmt.Sprintf("%s", b))
	assert.Equal(t, redacted, fmt.Sprintf("%#v", b))

	text, err := b.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, redacted, string(text))
}
