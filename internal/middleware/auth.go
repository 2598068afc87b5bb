package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/stayloft/api/internal/model"
	"github.com/stayloft/api/pkg/jwt"
)

// TokenValidator defines the interface for bearer token validation
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// Auth returns a middleware that requires a valid bearer token and stores
// the caller's identity in the request context
func Auth(tokens TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, problem := bearerToken(r)
			if problem != nil {
				problem.WriteJSON(w)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					model.NewUnauthorizedError("token expired").WriteJSON(w)
				case errors.Is(err, jwt.ErrInvalidSignature):
					model.NewUnauthorizedError("invalid token signature").WriteJSON(w)
				default:
					model.NewUnauthorizedError("invalid token").WriteJSON(w)
				}
				return
			}

			ctx := withIdentity(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth is like Auth but lets anonymous requests through. A valid
// token still attaches the caller's identity to the context; a missing or
// invalid one leaves the request anonymous.
func OptionalAuth(tokens TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, problem := bearerToken(r)
			if problem != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := withIdentity(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated identity from context.
// Returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *model.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*model.Identity); ok {
		return identity
	}
	return nil
}

func withIdentity(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, IdentityKey, &model.Identity{
		UserID:  claims.UserID,
		IsAdmin: claims.IsAdmin(),
	})
}

func bearerToken(r *http.Request) (string, *model.ProblemDetails) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", model.NewUnauthorizedError("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", model.NewUnauthorizedError("invalid authorization header format")
	}
	return parts[1], nil
}
