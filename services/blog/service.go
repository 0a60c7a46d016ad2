package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/repositories"
	"github.com/upb/blog-platform/services"
	"go.uber.org/zap"
)

const (
	// DefaultListLimit is used when the caller does not ask for a page size
	DefaultListLimit = 50
	// MaxListLimit caps the page size
	MaxListLimit = 100
)

// Service manages blog posts
type Service struct {
	blogs  repositories.BlogRepository
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewService creates a new blog service
func NewService(blogs repositories.BlogRepository, users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		blogs:  blogs,
		users:  users,
		logger: logger,
	}
}

// List returns posts newest first, each with its author
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	blogs, err := s.blogs.List(ctx, limit, offset)
	if err != nil {
		return nil, services.WrapInternal("failed to list blogs", err)
	}
	if blogs == nil {
		blogs = []*models.Blog{}
	}
	return blogs, nil
}

// Create stores a new post for the authenticated author
func (s *Service) Create(ctx context.Context, authorID uuid.UUID, title, content string) (*models.Blog, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, services.ErrTitleContentEmpty
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// token outlived its account
			return nil, services.ErrUnauthorized
		}
		return nil, services.WrapInternal("failed to load author", err)
	}

	post := models.NewBlog(author.ID, title, content)
	if err := s.blogs.Create(ctx, post); err != nil {
		return nil, services.WrapInternal("failed to create blog", err)
	}

	a := author.Author()
	post.Author = &a

	s.logger.Info("blog created",
		zap.String("blog_id", post.ID.String()),
		zap.String("author_id", author.ID.String()),
	)
	return post, nil
}

// Get returns a single post by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	post, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrBlogNotFound
		}
		return nil, services.WrapInternal("failed to load blog", err)
	}
	return post, nil
}
