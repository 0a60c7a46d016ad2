package handlers

import (
	"context"
	"net/http"

	"github.com/upb/blog-platform/internal/kb"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/services"
	"github.com/upb/blog-platform/services/assistant"
	"github.com/upb/blog-platform/services/providers"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
)

// Fixed bodies of the support query endpoint
const (
	queryUsageMessage     = "Please send { question: string } in the body."
	queryServerError      = "Server error"
	queryProviderError    = "AI service error"
	queryMethodNotAllowed = "Method not allowed"
)

// AssistantService defines the support operations used by AssistantHandler
type AssistantService interface {
	Answer(ctx context.Context, question string) (*assistant.Answer, error)
	Entries(ctx context.Context) ([]kb.Entry, error)
}

// QueryRequest is the body of POST /api/ai/query
type QueryRequest struct {
	Question string `json:"question"`
}

// QueryResponse is every body returned by /api/ai/query
type QueryResponse struct {
	Answer string      `json:"answer"`
	Source string      `json:"source,omitempty"`
	Debug  *QueryDebug `json:"debug,omitempty"`
}

// QueryDebug carries retrieval and completion diagnostics
type QueryDebug struct {
	Score float64          `json:"score"`
	Usage *providers.Usage `json:"usage,omitempty"`
}

// EntriesResponse wraps the knowledge base listing
type EntriesResponse struct {
	Entries []kb.Entry `json:"entries"`
}

// AssistantHandler serves the support assistant and knowledge base
type AssistantHandler struct {
	service AssistantService
	logger  *zap.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(service AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		logger:  logger,
	}
}

// HandleQuery handles POST /api/ai/query. Errors use the same {answer}
// envelope as successful replies.
func (h *AssistantHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req QueryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("invalid query body",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.write(w, http.StatusBadRequest, QueryResponse{Answer: queryUsageMessage})
		return
	}

	answer, err := h.service.Answer(ctx, req.Question)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			h.write(w, http.StatusBadRequest, QueryResponse{Answer: queryUsageMessage})
		case services.IsExternalError(err):
			h.logger.Warn("support query provider failure",
				zap.String("request_id", requestID),
				zap.Error(err))
			h.write(w, http.StatusBadGateway, QueryResponse{Answer: queryProviderError, Source: assistant.SourceOpenAI})
		default:
			h.logger.Error("support query failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			h.write(w, http.StatusInternalServerError, QueryResponse{Answer: queryServerError})
		}
		return
	}

	h.write(w, http.StatusOK, QueryResponse{
		Answer: answer.Text,
		Source: answer.Source,
		Debug:  &QueryDebug{Score: answer.Score, Usage: answer.Usage},
	})
}

// HandleQueryMethodNotAllowed answers non-POST requests to /api/ai/query
func (h *AssistantHandler) HandleQueryMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if err := utils.WriteMethodNotAllowed(w, QueryResponse{Answer: queryMethodNotAllowed}, http.MethodPost); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

// HandleListEntries handles GET /api/kb
func (h *AssistantHandler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Entries(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if entries == nil {
		entries = []kb.Entry{}
	}
	h.write(w, http.StatusOK, EntriesResponse{Entries: entries})
}

func (h *AssistantHandler) write(w http.ResponseWriter, status int, body interface{}) {
	if err := utils.WriteJSON(w, status, body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
