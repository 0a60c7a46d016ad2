package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")
)

// TransactionManager runs work inside a database transaction. Repositories
// called with the callback's context join that transaction.
type TransactionManager interface {
	// InTransaction commits when fn returns nil and rolls back otherwise
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository handles account data operations
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// BlogRepository handles post data operations
type BlogRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, blog *models.Blog) error

	// GetByID retrieves a post with its author
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)

	// List retrieves posts newest first, each with its author
	List(ctx context.Context, limit, offset int) ([]*models.Blog, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users UserRepository
	Blogs BlogRepository
}
