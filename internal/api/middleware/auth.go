package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"

	"github.com/janjikita/booking-service/internal/api/handlers"
)

type contextKey string

const (
	businessIDKey contextKey = "businessID"
	roleKey       contextKey = "role"

	// RoleAdmin marks platform operators who may use the admin routes.
	RoleAdmin = "admin"

	msgMissingToken  = "token autentikasi tidak ditemukan"
	msgInvalidToken  = "token autentikasi tidak valid"
	msgWrongBusiness = "akses ke bisnis lain tidak diizinkan"
	msgAdminOnly     = "hanya admin yang dapat mengakses"
)

// Claims carries the authenticated identity inside the JWT.
type Claims struct {
	BusinessID string `json:"businessId,omitempty"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Auth validates the Bearer token and stores the claims in the request
// context. Routes with a {businessId} path variable additionally require
// the token to belong to that business, unless the caller is an admin.
func Auth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseToken(w, r, secret)
			if !ok {
				return
			}

			if businessID, present := mux.Vars(r)["businessId"]; present {
				if claims.Role != RoleAdmin && claims.BusinessID != businessID {
					handlers.RespondError(w, http.StatusForbidden, msgWrongBusiness)
					return
				}
			}

			ctx := context.WithValue(r.Context(), businessIDKey, claims.BusinessID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly validates the Bearer token and requires the admin role.
func AdminOnly(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseToken(w, r, secret)
			if !ok {
				return
			}
			if claims.Role != RoleAdmin {
				handlers.RespondError(w, http.StatusForbidden, msgAdminOnly)
				return
			}

			ctx := context.WithValue(r.Context(), roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseToken(w http.ResponseWriter, r *http.Request, secret string) (*Claims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingToken)
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
	if err != nil || !token.Valid {
		handlers.RespondError(w, http.StatusUnauthorized, msgInvalidToken)
		return nil, false
	}

	return claims, true
}

// BusinessIDFromContext returns the authenticated business id, if any.
func BusinessIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(businessIDKey).(string)
	return id, ok && id != ""
}

// RoleFromContext returns the authenticated role, if any.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok && role != ""
}
