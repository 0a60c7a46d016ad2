package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/services"
	"github.com/upb/blog-platform/services/accounts"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

func TestHandleSignup(t *testing.T) {
	logger := zap.NewNop()

	t.Run("created with user and token", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)

		user := models.NewUser("new@example.com", "hash")
		svc.On("Signup", mock.Anything, accounts.Credentials{Email: "new@example.com", Password: "secret1"}).
			Return(&accounts.Session{User: user, Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			strings.NewReader(`{"email":"new@example.com","password":"secret1"}`))
		w := httptest.NewRecorder()

		handler.HandleSignup(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "tok", body["token"])
		gotUser := body["user"].(map[string]interface{})
		assert.Equal(t, "new@example.com", gotUser["email"])
		assert.NotContains(t, gotUser, "password_hash")
		svc.AssertExpectations(t)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)
		svc.On("Signup", mock.Anything, mock.Anything).Return(nil, services.ErrDuplicateEmail)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
			strings.NewReader(`{"email":"a@example.com","password":"secret1"}`))
		w := httptest.NewRecorder()

		handler.HandleSignup(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":`))
		w := httptest.NewRecorder()

		handler.HandleSignup(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
	})
}

func TestHandleLogin(t *testing.T) {
	logger := zap.NewNop()

	t.Run("success", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)
		user := models.NewUser("user@example.com", "hash")
		svc.On("Login", mock.Anything, accounts.Credentials{Email: "user@example.com", Password: "secret1"}).
			Return(&accounts.Session{User: user, Token: "tok"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"user@example.com","password":"secret1"}`))
		w := httptest.NewRecorder()

		handler.HandleLogin(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "tok", body["token"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)
		svc.On("Login", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"user@example.com","password":"nope"}`))
		w := httptest.NewRecorder()

		handler.HandleLogin(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Invalid credentials", body.Message)
	})
}

func TestHandleMe(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns current user", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)
		user := models.NewUser("me@example.com", "hash")
		svc.On("Me", mock.Anything, user.ID).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(middleware.WithUserID(req.Context(), user.ID))
		w := httptest.NewRecorder()

		handler.HandleMe(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, user.ID.String(), body["user"]["id"])
	})

	t.Run("no user in context", func(t *testing.T) {
		handler := NewAuthHandler(new(MockAccountService), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()

		handler.HandleMe(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("account gone", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAuthHandler(svc, logger)
		id := uuid.New()
		svc.On("Me", mock.Anything, id).Return(nil, services.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(middleware.WithUserID(req.Context(), id))
		w := httptest.NewRecorder()

		handler.HandleMe(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
