// Package mocks provides testify mocks of the repository interfaces for
// service and handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/repositories"
)

var (
	_ repositories.UserRepository     = (*MockUserRepository)(nil)
	_ repositories.BlogRepository     = (*MockBlogRepository)(nil)
	_ repositories.TransactionManager = (*MockTransactionManager)(nil)
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockBlogRepository is a mock implementation of repositories.BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if blog := args.Get(0); blog != nil {
		return blog.(*models.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	args := m.Called(ctx, limit, offset)
	if blogs := args.Get(0); blogs != nil {
		return blogs.([]*models.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTransactionManager runs the callback inline unless InTransaction is
// configured to fail
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
