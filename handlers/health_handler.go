package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/blog-platform/internal/kb"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// DatabaseChecker verifies database connectivity
type DatabaseChecker interface {
	HealthCheck(ctx context.Context) error
}

// KnowledgeChecker loads the knowledge base for readiness checks
type KnowledgeChecker interface {
	Load(ctx context.Context) ([]kb.Entry, error)
}

// ProviderChecker reports whether the completion provider answers
type ProviderChecker interface {
	IsAvailable(ctx context.Context) bool
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	db        DatabaseChecker
	knowledge KnowledgeChecker
	provider  ProviderChecker
	logger    *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. Any checker may be nil.
func NewHealthHandler(db DatabaseChecker, knowledge KnowledgeChecker, provider ProviderChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		knowledge: knowledge,
		provider:  provider,
		logger:    logger,
	}
}

// HandleHealth handles GET /healthz
// Liveness only: returns 200 whenever the process is serving
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleReadiness handles GET /readyz
// Readiness check - validates that all dependencies are available
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if err := h.checkDatabase(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		allHealthy = false
	} else {
		checks["database"] = "healthy"
	}

	if err := h.checkKnowledgeBase(ctx); err != nil {
		h.logger.Warn("knowledge base health check failed", zap.Error(err))
		checks["knowledge_base"] = "unhealthy"
		allHealthy = false
	} else {
		checks["knowledge_base"] = "healthy"
	}

	// The assistant falls back to the knowledge base without a provider,
	// so an unreachable one is reported but does not fail readiness.
	if h.provider != nil {
		if h.provider.IsAvailable(ctx) {
			checks["completion_provider"] = "healthy"
		} else {
			h.logger.Warn("completion provider unavailable")
			checks["completion_provider"] = "unavailable"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, utils.SuccessResponse{Data: response}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	return h.db.HealthCheck(ctx)
}

func (h *HealthHandler) checkKnowledgeBase(ctx context.Context) error {
	if h.knowledge == nil {
		return nil
	}
	_, err := h.knowledge.Load(ctx)
	return err
}
