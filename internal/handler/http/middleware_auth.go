package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/utils"
)

// withAuth rejects requests without a valid bearer token signed with the
// configured key. On success the token subject is stored under
// [utils.SubjectCtxKey] and added to the request logger.
func (h *Handler) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.auth.TokenSignKey, h.auth.TokenIssuer)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				writeError(w, r, ErrTokenExpired)
				return
			}
			writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidToken, err))
			return
		}

		l := logger.FromRequest(r)
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("subject", token.Subject)
		})

		ctx := context.WithValue(r.Context(), utils.SubjectCtxKey, token.Subject)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
