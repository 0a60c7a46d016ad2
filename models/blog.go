package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Author is the public view of a post's author
type Author struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Blog represents a published post
type Blog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Blog model
func (Blog) TableName() string {
	return "blogs"
}

// NewBlog creates a new post owned by authorID
func NewBlog(authorID uuid.UUID, title, content string) *Blog {
	now := time.Now().UTC()
	return &Blog{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
