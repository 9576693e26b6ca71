package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eliezer-r/storefront-platform/internal/errors"
	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/eliezer-r/storefront-platform/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type userContextKey string

// UserContextKey carries the authenticated user's claims through the context.
const UserContextKey = userContextKey("user")

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// Authenticate accepts a bearer token or, matching the browser client, a
// "token" cookie.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		tokenString := bearerToken(r)
		if tokenString == "" {
			logger.Warn("Missing session token")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.BadRequestError("unexpected signing method")
			}

			return m.jwtKey, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Session token rejected", slog.Any("error", err))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))

			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Token expired"))

			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestLogger := logger.With(slog.String("userId", claims.UserID.String()))
		ctx = context.WithValue(ctx, LoggerKey, requestLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}

		return ""
	}

	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}

	return ""
}

// ClaimsFromContext returns the authenticated claims, or nil when the
// request never went through Authenticate.
func ClaimsFromContext(ctx context.Context) *models.Claims {
	if claims, ok := ctx.Value(UserContextKey).(*models.Claims); ok {
		return claims
	}

	return nil
}
