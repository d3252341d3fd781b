package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed or parsed bearer token for the local API.
type Token struct {
	*jwt.Token

	// SignedString is the compact serialisation, set by GenerateJWTToken.
	SignedString string

	// Subject names the client the token was issued to.
	Subject string
}

// GenerateJWTToken issues an HS256 token for subject.
func GenerateJWTToken(issuer, subject string, tokenDuration time.Duration, signKey string) (Token, error) {
	if issuer == "" || subject == "" || tokenDuration <= 0 || signKey == "" {
		return Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return Token{Token: token, SignedString: tokenString, Subject: subject}, nil
}

// ValidateAndParseJWTToken verifies signature, expiry and issuer.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return Token{}, errors.New("empty subject error")
	}

	return Token{Token: token, Subject: subject}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer ..."
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(token), nil
}
