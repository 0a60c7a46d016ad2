// Package assistant answers support questions from the knowledge base,
// consulting a chat completion provider when no entry matches well enough.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"github.com/upb/blog-platform/internal/kb"
	"github.com/upb/blog-platform/internal/observability"
	"github.com/upb/blog-platform/services"
	"github.com/upb/blog-platform/services/providers"
	"go.uber.org/zap"
)

// Answer sources
const (
	SourceOpenAI = "openai"
	SourceNone   = "none"

	kbSourcePrefix = "kb:"
)

const (
	// NoAnswerText is returned when neither the KB nor a provider can help
	NoAnswerText = "Sorry — I don't have an answer in my knowledge base. Please contact support at support@example.com."
	// EmptyCompletionText is returned when the provider sends no choices
	EmptyCompletionText = "Sorry, I couldn't get an answer."
)

// KnowledgeSource supplies the current KB entries
type KnowledgeSource interface {
	Load(ctx context.Context) ([]kb.Entry, error)
}

// Config tunes the completion fallback
type Config struct {
	Model     string
	MaxTokens int
	// Timeout bounds one whole completion call, provider retries included
	Timeout     time.Duration
	BreakerTrip int
}

// Answer is the outcome of a support question
type Answer struct {
	Text   string
	Source string
	Score  float64
	Usage  *providers.Usage
}

// Service answers support questions
type Service struct {
	source   KnowledgeSource
	provider providers.Provider
	breaker  *gobreaker.CircuitBreaker
	config   Config
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewService creates an assistant. provider may be nil, in which case
// low-scoring questions fall straight back to the knowledge base.
func NewService(source KnowledgeSource, provider providers.Provider, cfg Config, metrics *observability.Metrics, logger *zap.Logger) *Service {
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 300
	}
	if cfg.BreakerTrip <= 0 {
		cfg.BreakerTrip = 5
	}

	s := &Service{
		source:   source,
		provider: provider,
		config:   cfg,
		metrics:  metrics,
		logger:   logger,
	}

	if provider != nil {
		trip := uint32(cfg.BreakerTrip)
		s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        provider.Name(),
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= trip
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("completion circuit breaker state changed",
					zap.String("provider", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}

	return s
}

// HasProvider reports whether a completion fallback is configured
func (s *Service) HasProvider() bool {
	return s.provider != nil
}

// Entries returns the current knowledge base
func (s *Service) Entries(ctx context.Context) ([]kb.Entry, error) {
	entries, err := s.source.Load(ctx)
	if err != nil {
		return nil, services.WrapInternal(services.ErrKnowledgeBase.Message, err)
	}
	return entries, nil
}

// Search scores question against the knowledge base without any fallback
func (s *Service) Search(ctx context.Context, question string) (kb.Result, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return kb.Result{}, err
	}
	return kb.Retrieve(entries, question), nil
}

// Answer resolves a support question. A confident KB match wins, then the
// completion provider, then the best KB match of any score, then NoAnswerText.
// Only the empty string is rejected; a blank question scores zero and falls
// through like any other miss.
func (s *Service) Answer(ctx context.Context, question string) (*Answer, error) {
	if question == "" {
		return nil, services.ErrEmptyQuestion
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	result := kb.Retrieve(entries, question)
	s.metrics.ObserveRetrievalScore(result.Score)

	var answer *Answer
	switch {
	case result.Accepted():
		answer = entryAnswer(result)
	case s.provider != nil:
		answer, err = s.complete(ctx, entries, question)
		if err != nil {
			s.metrics.RecordAnswer("error")
			return nil, err
		}
		answer.Score = result.Score
	case result.Best != nil:
		answer = entryAnswer(result)
	default:
		answer = &Answer{Text: NoAnswerText, Source: SourceNone, Score: result.Score}
	}

	s.metrics.RecordAnswer(answer.Source)
	s.logger.Debug("support question answered",
		zap.String("source", answer.Source),
		zap.Float64("score", result.Score),
	)
	return answer, nil
}

func (s *Service) complete(ctx context.Context, entries []kb.Entry, question string) (*Answer, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	req := &providers.ChatRequest{
		Model:       s.config.Model,
		Messages:    buildMessages(entries, question),
		MaxTokens:   s.config.MaxTokens,
		Temperature: 0,
	}

	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.provider.ChatCompletion(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Warn("completion provider short-circuited", zap.Error(err))
			return nil, services.WrapExternal(services.ErrProviderUnavailable.Message, err)
		}
		s.logger.Error("completion provider failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		return nil, services.WrapExternal(services.ErrProviderError.Message, err)
	}

	resp, _ := out.(*providers.ChatResponse)
	answer := &Answer{Text: EmptyCompletionText, Source: SourceOpenAI}
	if resp != nil {
		usage := resp.Usage
		answer.Usage = &usage
	}
	if text, ok := resp.FirstContent(); ok {
		answer.Text = text
	}
	return answer, nil
}

func entryAnswer(r kb.Result) *Answer {
	return &Answer{
		Text:   formatEntry(r.Best),
		Source: kbSourcePrefix + r.Best.ID,
		Score:  r.Score,
	}
}
