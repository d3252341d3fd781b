package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("go-key", "raycast", time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "raycast", token.Subject)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "go-key", claims.Issuer)
	assert.Equal(t, "raycast", claims.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "cli", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "cli", 0, "key"},
		{"negative duration", "iss", "cli", -time.Hour, "key"},
		{"empty key", "iss", "cli", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("go-key", "raycast", time.Hour, "k")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "k", "go-key")
	require.NoError(t, err)
	assert.Equal(t, "raycast", parsed.Subject)
	assert.True(t, parsed.Valid)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken("go-key", "cli", time.Hour, "k")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "go-key",
		Subject:   "cli",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredStr, err := expired.SignedString([]byte("k"))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "go-key",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	noSubjectStr, err := noSubject.SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid.SignedString, "other", "go-key"},
		{"wrong issuer", valid.SignedString, "k", "someone-else"},
		{"expired", expiredStr, "k", "go-key"},
		{"no subject", noSubjectStr, "k", "go-key"},
		{"malformed", "not.a.token", "k", "go-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ParseBearerToken("  bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Bearer ", "Basic abc", "abc"} {
		_, err := ParseBearerToken(h)
		assert.Error(t, err, h)
	}
}
