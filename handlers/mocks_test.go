package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/blog-platform/internal/kb"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/services/accounts"
	"github.com/upb/blog-platform/services/assistant"
)

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Signup(ctx context.Context, creds accounts.Credentials) (*accounts.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Session), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, creds accounts.Credentials) (*accounts.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Session), args.Error(1)
}

func (m *MockAccountService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockBlogService is a mock implementation of BlogService
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) List(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Blog), args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, authorID uuid.UUID, title, content string) (*models.Blog, error) {
	args := m.Called(ctx, authorID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

// MockAssistantService is a mock implementation of AssistantService
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Answer(ctx context.Context, question string) (*assistant.Answer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.Answer), args.Error(1)
}

func (m *MockAssistantService) Entries(ctx context.Context) ([]kb.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kb.Entry), args.Error(1)
}
