package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"seo-spinner/internal/auth"

	"go.uber.org/zap"
)

// TokenVersionChecker confirms a token has not been revoked by a version bump.
type TokenVersionChecker interface {
	CheckTokenVersion(ctx context.Context, userID string, tokenVersion int) (bool, error)
}

type AuthMiddleware struct {
	jwt      *auth.JWTManager
	versions TokenVersionChecker
	logr     *zap.Logger
}

type contextKey string

const (
	ContextUserIDKey  contextKey = "userID"
	ContextAuthMethod contextKey = "authMethod"
	ContextRolesKey   contextKey = "roles"
)

func NewAuthMiddleware(jwt *auth.JWTManager, versions TokenVersionChecker, logr *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, versions: versions, logr: logr}
}

// JWTAuth validates the bearer access token and attaches the caller to the request context.
func (m *AuthMiddleware) JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "missing authorization header")
			return
		}
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(w, "invalid token format")
			return
		}

		claims, err := m.jwt.Verify(tokenString, auth.AccessToken)
		if err != nil {
			m.logr.Warn("token rejected", zap.Error(err))
			unauthorized(w, "invalid or expired token")
			return
		}

		valid, err := m.versions.CheckTokenVersion(r.Context(), claims.Subject, claims.TokenVersion)
		if err != nil {
			m.logr.Error("failed checking token version", zap.Error(err), zap.String("user_id", claims.Subject))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "internal server error"})
			return
		}
		if !valid {
			m.logr.Warn("token version invalid", zap.String("user_id", claims.Subject))
			unauthorized(w, "token revoked or invalid")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, ContextAuthMethod, claims.AuthMethod)
		ctx = context.WithValue(ctx, ContextRolesKey, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id, or "" when the request is anonymous.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ContextUserIDKey).(string)
	return id
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
