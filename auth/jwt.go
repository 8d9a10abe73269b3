package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lumentix/internal/status"
)

type tokenKey struct{}

// WithToken stores the caller's bearer token on the context for the
// authorizer to verify.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token previously attached with
// WithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

// TokenAuthorizer verifies HS256 JWTs: the caller is authorized to act
// as a principal only when the token's subject equals that principal.
type TokenAuthorizer struct {
	secret []byte
}

func NewTokenAuthorizer(secret string) *TokenAuthorizer {
	return &TokenAuthorizer{secret: []byte(secret)}
}

func (a *TokenAuthorizer) RequireAuthorized(ctx context.Context, principal string) error {
	raw, ok := TokenFromContext(ctx)
	if !ok || raw == "" {
		return status.ErrUnauthorized
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, status.ErrUnauthorized
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return status.ErrUnauthorized
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" || subject != principal {
		return status.ErrUnauthorized
	}
	return nil
}

// NewToken signs an HS256 JWT for principal with the given TTL. Used by
// tests and local tooling; production callers bring their own tokens.
func NewToken(secret, principal string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": principal,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
