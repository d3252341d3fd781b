// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// PasswordCharset is the alphabet used by GeneratePassword.
const PasswordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz" +
	"0123456789!@#$%^&*()_+-=[]{}|;':,.<>?"

// DefaultPasswordLength is used by `key gen` without an explicit length.
const DefaultPasswordLength = 18

// GeneratePassword returns length characters drawn uniformly from
// PasswordCharset using crypto/rand.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}

	max := big.NewInt(int64(len(PasswordCharset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = PasswordCharset[n.Int64()]
	}
	return string(out), nil
}
