package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/auth"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/repositories"
	"github.com/upb/blog-platform/services"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

// TokenIssuer signs session tokens for users
type TokenIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
}

// Credentials is the signup and login payload
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Session is returned on successful signup or login
type Session struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Service handles account registration and authentication
type Service struct {
	users      repositories.UserRepository
	txManager  repositories.TransactionManager
	tokens     TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

// NewService creates a new accounts service. txManager may be nil.
func NewService(users repositories.UserRepository, txManager repositories.TransactionManager, tokens TokenIssuer, bcryptCost int, logger *zap.Logger) *Service {
	return &Service{
		users:      users,
		txManager:  txManager,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Signup registers a new account and returns a session for it
func (s *Service) Signup(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Email = models.NormalizeEmail(creds.Email)
	if err := utils.ValidateStruct(&creds); err != nil {
		return nil, validationError(err)
	}
	// max=72 above counts runes; bcrypt's limit is in bytes
	if len(creds.Password) > auth.MaxPasswordBytes {
		return nil, services.ErrPasswordTooLong
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return nil, services.WrapInternal("failed to hash password", err)
	}
	user := models.NewUser(creds.Email, hash)

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
			return services.ErrDuplicateEmail
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return services.WrapInternal("failed to look up user", err)
		}

		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return services.ErrDuplicateEmail
			}
			return services.WrapInternal("failed to create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID.String()))
	return s.session(user)
}

// Login authenticates by email and password
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	email := models.NormalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, services.NewDomainError(services.ErrorTypeValidation, "email and password are required", nil)
	}

	// No stored account can have a longer password
	if len(creds.Password) > auth.MaxPasswordBytes {
		return nil, services.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrInvalidCredentials
		}
		return nil, services.WrapInternal("failed to look up user", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, creds.Password)
	if err != nil {
		return nil, services.WrapInternal("failed to verify password", err)
	}
	if !ok {
		s.logger.Debug("password mismatch", zap.String("user_id", user.ID.String()))
		return nil, services.ErrInvalidCredentials
	}

	return s.session(user)
}

// Me returns the stored account for an authenticated user ID
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, services.WrapInternal("failed to load user", err)
	}
	return user, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, services.WrapInternal("failed to issue token", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.InTransaction(ctx, fn)
}

func validationError(err error) error {
	domainErr := services.NewDomainError(services.ErrorTypeValidation, "Validation failed", err)
	if fields := utils.GetValidationFields(err); fields != nil {
		domainErr.WithDetail("fields", fields)
	}
	return domainErr
}
