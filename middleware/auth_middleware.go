package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating signed tokens
type TokenValidator interface {
	// ValidateToken validates a token and returns its claims
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// AuthTokenCookieName is the cookie checked when no Authorization header is sent
const AuthTokenCookieName = "auth_token"

// RequireAuth is a middleware that requires a valid token whose userId
// claim is a UUID
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractToken(r)
		if token == "" {
			m.logger.Debug("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Unauthorized")
			return
		}

		claims, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Unauthorized")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			m.logger.Warn("invalid userId in claims",
				zap.String("request_id", requestID),
				zap.String("user_id", claims.UserID))
			_ = utils.WriteUnauthorized(w, "Unauthorized")
			return
		}

		ctx = WithUserID(ctx, userID)

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("user_id", claims.UserID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken extracts the token from the Authorization header ("Bearer TOKEN")
// or the auth_token cookie. The header takes precedence when both are present.
func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(AuthTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
