package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rkmehedi/nexyn-pets-server/internal/domain"
)

// TokenTTL bounds every issued credential.
const TokenTTL = time.Hour

// TokenClaims are the claims carried by the service's bearer tokens. Role is
// deliberately absent: it is looked up live on every authorization decision.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey string

const identityKey contextKey = "identity"

// SignToken mints an HS256 credential for the given subject email.
func SignToken(secret, email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    "nexyn-pets-server",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken checks signature and expiry and returns the verified claims.
func VerifyToken(secret, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// AuthJWT authenticates the bearer credential and stores the verified
// identity on the request context. Requests without a valid credential are
// rejected before reaching any handler.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}
			claims, err := VerifyToken(secret, parts[1])
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := ContextWithIdentity(r.Context(), domain.Identity{Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"unauthorized access"}`))
}

// IdentityFromContext returns the verified identity, or a zero Identity when
// the request was not authenticated.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if v, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return v
	}
	return domain.Identity{}
}

func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
