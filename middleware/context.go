package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type contextKey string

// UserIDKey is the context key for the authenticated user ID
const UserIDKey contextKey = "user_id"

// Claims represents the verified token claims
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Sub    string `json:"sub"`
	Iss    string `json:"iss"` // Issuer
	Exp    int64  `json:"exp"` // Expiration
	Iat    int64  `json:"iat"` // Issued at
}

// GetRequestIDFromContext returns the ID assigned by chi's RequestID
// middleware, or "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}

// GetUserIDFromContext retrieves the authenticated user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// WithUserID adds the authenticated user ID to the context
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
