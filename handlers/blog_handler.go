package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

// BlogService defines the post operations used by BlogHandler
type BlogService interface {
	List(ctx context.Context, limit, offset int) ([]*models.Blog, error)
	Create(ctx context.Context, authorID uuid.UUID, title, content string) (*models.Blog, error)
}

// CreateBlogRequest is the body of POST /api/blogs
type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BlogListResponse wraps a page of posts
type BlogListResponse struct {
	Blogs []*models.Blog `json:"blogs"`
}

// BlogResponse wraps a single post
type BlogResponse struct {
	Blog *models.Blog `json:"blog"`
}

// BlogHandler handles blog post endpoints
type BlogHandler struct {
	service BlogService
	logger  *zap.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(service BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /api/blogs
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		_ = utils.WriteBadRequest(w, "limit must be an integer", nil)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		_ = utils.WriteBadRequest(w, "offset must be an integer", nil)
		return
	}

	blogs, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, BlogListResponse{Blogs: blogs}); err != nil {
		h.logger.Error("failed to write blog list response", zap.Error(err))
	}
}

// HandleCreate handles POST /api/blogs
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		_ = utils.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req CreateBlogRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	blog, err := h.service.Create(r.Context(), authorID, req.Title, req.Content)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusCreated, BlogResponse{Blog: blog}); err != nil {
		h.logger.Error("failed to write blog response", zap.Error(err))
	}
}

// queryInt returns 0 when the parameter is absent
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
