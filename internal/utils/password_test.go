package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(DefaultPasswordLength)
	require.NoError(t, err)
	assert.Len(t, pw, DefaultPasswordLength)

	for _, r := range pw {
		assert.True(t, strings.ContainsRune(PasswordCharset, r), "unexpected rune %q", r)
	}

	other, err := GeneratePassword(64)
	require.NoError(t, err)
	assert.NotEqual(t, pw, other[:DefaultPasswordLength])
}

func TestGeneratePassword_InvalidLength(t *testing.T) {
	_, err := GeneratePassword(0)
	assert.Error(t, err)

	_, err = GeneratePassword(-3)
	assert.Error(t, err)
}
