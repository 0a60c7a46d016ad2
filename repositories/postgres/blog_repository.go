package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/repositories"
	"go.uber.org/zap"
)

const blogSelect = `
	SELECT b.id, b.title, b.content, b.author_id, b.created_at, b.updated_at, u.email
	FROM blogs b
	JOIN users u ON u.id = b.author_id
`

// BlogRepository implements the repositories.BlogRepository interface
type BlogRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *DB, logger *zap.Logger) repositories.BlogRepository {
	return &BlogRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new post
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (id, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.AuthorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	r.logger.Debug("blog created",
		zap.String("id", blog.ID.String()),
		zap.String("author_id", blog.AuthorID.String()))
	return nil
}

// GetByID retrieves a post by ID
func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	query := blogSelect + `WHERE b.id = $1`

	executor := GetExecutor(ctx, r.db)
	blog, err := scanBlog(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(translateError(err), repositories.ErrNotFound) {
			return nil, fmt.Errorf("blog %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// List retrieves posts newest first
func (r *BlogRepository) List(ctx context.Context, limit, offset int) ([]*models.Blog, error) {
	query := blogSelect + `ORDER BY b.created_at DESC, b.id LIMIT $1 OFFSET $2`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*models.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlog(row rowScanner) (*models.Blog, error) {
	blog := &models.Blog{Author: &models.Author{}}
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.AuthorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	blog.Author.ID = blog.AuthorID
	return blog, nil
}
