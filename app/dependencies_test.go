package app

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/blog-platform/config"
	"github.com/upb/blog-platform/models"
	"github.com/upb/blog-platform/repositories/postgres"
	"go.uber.org/zap/zaptest"
)

func TestNewDependenciesFromFactory(t *testing.T) {
	t.Run("wires every component without a provider", func(t *testing.T) {
		cfg := testConfig()
		deps, mock := newTestDependencies(t, cfg)

		assert.NotNil(t, deps.DB)
		assert.NotNil(t, deps.Users)
		assert.NotNil(t, deps.Blogs)
		assert.NotNil(t, deps.TxManager)
		assert.NotNil(t, deps.Tokens)
		assert.NotNil(t, deps.AuthMiddleware)
		assert.NotNil(t, deps.QueryLimiter)
		assert.NotNil(t, deps.Accounts)
		assert.NotNil(t, deps.BlogService)
		assert.NotNil(t, deps.Assistant)
		assert.Equal(t, "public/kb.json", deps.KnowledgeBase.Path())

		assert.Nil(t, deps.Provider)
		assert.False(t, deps.Assistant.HasProvider())
		assert.Nil(t, deps.Metrics)

		mock.ExpectClose()
		require.NoError(t, deps.Close(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("registers OpenAI when a key is set", func(t *testing.T) {
		cfg := testConfig()
		cfg.Providers.OpenAI.APIKey = "sk-test"
		deps, _ := newTestDependencies(t, cfg)

		require.NotNil(t, deps.Provider)
		assert.Equal(t, "openai", deps.Provider.Name())
		assert.True(t, deps.Assistant.HasProvider())
	})

	t.Run("metrics when enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Observability.MetricsEnabled = true
		deps, _ := newTestDependencies(t, cfg)

		assert.NotNil(t, deps.Metrics)
	})

	t.Run("accounts issue tokens the middleware accepts", func(t *testing.T) {
		cfg := testConfig()
		deps, _ := newTestDependencies(t, cfg)

		user := models.NewUser("a@example.com", "hash")
		token, _, err := deps.Tokens.Issue(user)
		require.NoError(t, err)

		claims, err := deps.Tokens.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})
}

// Test helpers

func newTestDependencies(t *testing.T, cfg *config.Config) (*Dependencies, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	factory := postgres.NewRepositoryFactoryFromDB(postgres.Wrap(db, logger), logger)
	return NewDependenciesFromFactory(cfg, factory, logger), mock
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "blog",
			Database: "blog_test",
			SSLMode:  "disable",
		},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			Issuer:     "blog-platform",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
		Providers: config.ProvidersConfig{
			OpenAI: config.OpenAIConfig{
				BaseURL:    "https://api.openai.com/v1",
				Model:      "gpt-3.5-turbo",
				MaxTokens:  300,
				Timeout:    5 * time.Second,
				MaxRetries: 1,
			},
		},
		KnowledgeBase: config.KnowledgeBaseConfig{
			Path:     "public/kb.json",
			CacheTTL: time.Minute,
		},
		RateLimit: config.RateLimitConfig{
			QueryRatePerSec: 2,
			QueryBurst:      10,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}
