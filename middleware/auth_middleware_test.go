package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTokenValidator is a mock implementation of TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Claims), args.Error(1)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func assertUnauthorized(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "unauthorized", body["error"])
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestRequireAuth(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid token in Authorization header allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		userID := uuid.New()
		claims := &Claims{
			UserID: userID.String(),
			Sub:    userID.String(),
			Email:  "user@example.com",
		}
		mockValidator.On("ValidateToken", mock.Anything, "valid-token").Return(claims, nil)

		handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, userID, id)
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockValidator.AssertExpectations(t)
	})

	t.Run("valid token in cookie allows request", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		mockValidator.On("ValidateToken", mock.Anything, "cookie-token").
			Return(&Claims{UserID: uuid.New().String()}, nil)

		called := false
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: AuthTokenCookieName, Value: "cookie-token"})
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler(&called)).ServeHTTP(w, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("header takes precedence over cookie", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		mockValidator.On("ValidateToken", mock.Anything, "header-token").
			Return(&Claims{UserID: uuid.New().String()}, nil)

		called := false
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: AuthTokenCookieName, Value: "cookie-token"})
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler(&called)).ServeHTTP(w, req)

		assert.True(t, called)
		mockValidator.AssertExpectations(t)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		called := false
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler(&called)).ServeHTTP(w, req)

		assert.False(t, called)
		assertUnauthorized(t, w)
		mockValidator.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
	})

	t.Run("invalid authorization header format returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		called := false
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler(&called)).ServeHTTP(w, req)

		assert.False(t, called)
		assertUnauthorized(t, w)
	})

	t.Run("invalid token returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		mockValidator.On("ValidateToken", mock.Anything, "bad-token").
			Return(nil, errors.New("signature is invalid"))

		called := false
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler(&called)).ServeHTTP(w, req)

		assert.False(t, called)
		assertUnauthorized(t, w)
	})

	t.Run("non-uuid userId returns 401", func(t *testing.T) {
		mockValidator := new(MockTokenValidator)
		middleware := NewAuthMiddleware(mockValidator, logger)

		mockValidator.On("ValidateToken", mock.Anything, "legacy-token").
			Return(&Claims{UserID: "42"}, nil)

		called := false
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer legacy-token")
		w := httptest.NewRecorder()

		middleware.RequireAuth(okHandler(&called)).ServeHTTP(w, req)

		assert.False(t, called)
		assertUnauthorized(t, w)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc", "abc"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"extra whitespace", "Bearer   abc  ", "abc"},
		{"no token", "Bearer", ""},
		{"other scheme", "Token abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractBearerToken(req))
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, "", GetRequestIDFromContext(ctx))

	userID := uuid.New()
	got, ok := GetUserIDFromContext(WithUserID(ctx, userID))
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	ctx = context.WithValue(ctx, chimiddleware.RequestIDKey, "req-1")
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
}
