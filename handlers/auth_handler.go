package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/services/accounts"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

// AccountService defines the account operations used by AuthHandler
type AccountService interface {
	Signup(ctx context.Context, creds accounts.Credentials) (*accounts.Session, error)
	Login(ctx context.Context, creds accounts.Credentials) (*accounts.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// UserResponse wraps a single user
type UserResponse struct {
	User *models.User `json:"user"`
}

// AuthHandler handles signup, login and the current-user endpoint
type AuthHandler struct {
	service AccountService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AccountService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// HandleSignup handles POST /api/auth/signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var creds accounts.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	session, err := h.service.Signup(r.Context(), creds)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusCreated, session); err != nil {
		h.logger.Error("failed to write signup response", zap.Error(err))
	}
}

// HandleLogin handles POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds accounts.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	session, err := h.service.Login(r.Context(), creds)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, session); err != nil {
		h.logger.Error("failed to write login response", zap.Error(err))
	}
}

// HandleMe handles GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		_ = utils.WriteUnauthorized(w, "Unauthorized")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, UserResponse{User: user}); err != nil {
		h.logger.Error("failed to write user response", zap.Error(err))
	}
}
