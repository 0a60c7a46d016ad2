package app

import (
	"context"
	"fmt"
	"time"

	"github.com/upb/blog-platform/auth"
	"github.com/upb/blog-platform/config"
	"github.com/upb/blog-platform/internal/kb"
	"github.com/upb/blog-platform/internal/observability"
	"github.com/upb/blog-platform/middleware"
	"github.com/upb/blog-platform/repositories"
	"github.com/upb/blog-platform/repositories/postgres"
	"github.com/upb/blog-platform/services/accounts"
	"github.com/upb/blog-platform/services/assistant"
	"github.com/upb/blog-platform/services/blog"
	"github.com/upb/blog-platform/services/providers"
	"github.com/upb/blog-platform/services/providers/openai"
	"go.uber.org/zap"
)

// limiterIdleTTL is how long an idle client's token bucket is kept
const limiterIdleTTL = 10 * time.Minute

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	DB      *postgres.DB
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users     repositories.UserRepository
	Blogs     repositories.BlogRepository
	TxManager repositories.TransactionManager

	// Knowledge base and completion provider. Provider is nil when no
	// API key is configured.
	KnowledgeBase *kb.Loader
	Provider      providers.Provider

	// Services
	Accounts    *accounts.Service
	BlogService *blog.Service
	Assistant   *assistant.Service

	// Auth and request guards
	Tokens         *auth.TokenManager
	AuthMiddleware *middleware.AuthMiddleware
	QueryLimiter   *middleware.IPRateLimiter
}

// NewDependencies opens the database, ensures the schema exists and wires
// every component.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := factory.GetDB().InitSchema(ctx); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	deps := NewDependenciesFromFactory(cfg, factory, logger)
	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// NewDependenciesFromFactory wires every component over an open repository
// factory.
func NewDependenciesFromFactory(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) *Dependencies {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	if cfg.Observability.MetricsEnabled {
		deps.Metrics = observability.NewMetrics()
	}

	deps.initRepositories()
	deps.initAuth(cfg)
	deps.initAssistant(cfg)
	deps.initServices(cfg)

	return deps
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Blogs = repos.Blogs
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initAuth(cfg *config.Config) {
	d.Tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Tokens, d.Logger)
	d.QueryLimiter = middleware.NewIPRateLimiter(
		cfg.RateLimit.QueryRatePerSec,
		cfg.RateLimit.QueryBurst,
		limiterIdleTTL,
		d.Logger,
	)
}

// initAssistant wires the knowledge base loader and, when configured, the
// OpenAI completion fallback
func (d *Dependencies) initAssistant(cfg *config.Config) {
	d.KnowledgeBase = kb.NewLoader(cfg.KnowledgeBase.Path, cfg.KnowledgeBase.CacheTTL, d.Logger)

	openAI := cfg.Providers.OpenAI
	if openAI.Enabled() {
		d.Provider = openai.NewOpenAIAdapter(providers.ProviderConfig{
			APIKey:     openAI.APIKey,
			BaseURL:    openAI.BaseURL,
			Timeout:    openAI.Timeout,
			MaxRetries: openAI.MaxRetries,
			RetryDelay: openAI.RetryDelay,
		}, d.Logger)
		d.Logger.Info("registered OpenAI provider", zap.String("model", openAI.Model))
	} else {
		d.Logger.Warn("OPENAI_API_KEY not set, assistant answers from the knowledge base only")
	}

	d.Assistant = assistant.NewService(d.KnowledgeBase, d.Provider, assistant.Config{
		Model:       openAI.Model,
		MaxTokens:   openAI.MaxTokens,
		Timeout:     openAI.CallBudget(),
		BreakerTrip: openAI.BreakerTrip,
	}, d.Metrics, d.Logger)
}

func (d *Dependencies) initServices(cfg *config.Config) {
	d.Accounts = accounts.NewService(d.Users, d.TxManager, d.Tokens, cfg.Auth.BcryptCost, d.Logger)
	d.BlogService = blog.NewService(d.Blogs, d.Users, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
