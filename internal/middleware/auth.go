package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
	internal_jwt "github.com/pulsefeed-dev/pulsefeed/internal/jwt"
	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

// Key to store the user claims in the request context. Exported so
// handler tests can inject a user without running the middleware.
type key int

const UserClaimsKey key = 0

type Auth struct {
	jwt internal_jwt.JwtService
}

func NewAuth(jwt internal_jwt.JwtService) *Auth {
	return &Auth{jwt}
}

// extractToken looks for credentials in the accessToken cookie first,
// then in the Authorization header. An empty string means anonymous.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (a *Auth) userFromToken(tokenStr string) (*domain.User, error) {
	token, err := a.jwt.DecodeToken(tokenStr)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	uid, _ := claims["uid"].(string)
	id, err := uuid.Parse(uid)
	if err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	name, _ := claims["name"].(string)

	return &domain.User{Id: id, DisplayName: name}, nil
}

// NeedAuth rejects requests without a valid token.
func (a *Auth) NeedAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			http.Error(w, "Please sign-in", http.StatusUnauthorized)
			return
		}

		user, err := a.userFromToken(tokenStr)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserClaimsKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth lets anonymous requests through but still rejects
// requests that present a broken token.
func (a *Auth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.userFromToken(tokenStr)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserClaimsKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext returns the authenticated user or nil for
// anonymous requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
