package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret signs tokens when JWT_SECRET is unset outside production.
const devJWTSecret = "dev-insecure-jwt-secret-change-me"

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Providers     ProvidersConfig
	KnowledgeBase KnowledgeBaseConfig
	RateLimit     RateLimitConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds PostgreSQL database configuration.
// When ConnectionString (from DATABASE_URL) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string // From DATABASE_URL when set
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// AuthConfig holds token signing and password hashing settings
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

// ProvidersConfig holds completion provider configurations
type ProvidersConfig struct {
	OpenAI OpenAIConfig
}

// OpenAIConfig holds OpenAI provider configuration.
// The provider is disabled when APIKey is empty.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Timeout     time.Duration // per HTTP attempt
	CallTimeout time.Duration // whole call across retries; derived when zero
	MaxRetries  int
	RetryDelay  time.Duration
	BreakerTrip int // consecutive failures before the circuit opens
}

// maxRetryWaitFactor is the longest single backoff wait as a multiple of
// RetryDelay: the adapter caps intervals at 10x and jitters them by 50%.
const maxRetryWaitFactor = 15

// CallBudget bounds one completion call including every retry. Unless set
// explicitly it leaves room for each attempt to use its full Timeout.
func (c OpenAIConfig) CallBudget() time.Duration {
	if c.CallTimeout > 0 {
		return c.CallTimeout
	}
	retries := max(c.MaxRetries, 0)
	return time.Duration(retries+1)*c.Timeout + time.Duration(retries*maxRetryWaitFactor)*c.RetryDelay
}

// Enabled reports whether a completion service is configured
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// KnowledgeBaseConfig locates the static support knowledge base
type KnowledgeBaseConfig struct {
	Path     string
	CacheTTL time.Duration
}

// RateLimitConfig bounds the assistant query endpoint per client IP
type RateLimitConfig struct {
	QueryRatePerSec float64
	QueryBurst      int
}

// ObservabilityConfig holds monitoring and logging configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // json or text
	MetricsEnabled bool
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")

	env := getEnv("ENVIRONMENT", "development")
	cfg := &Config{
		Environment: env,
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 60*time.Second),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:*", "https://*"}),
		},
		Database: loadDatabaseConfig(),
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			Issuer:     getEnv("JWT_ISSUER", "blog-platform"),
			TokenTTL:   getEnvAsDuration("TOKEN_TTL", 7*24*time.Hour),
			BcryptCost: getEnvAsInt("BCRYPT_COST", 10),
		},
		Providers: ProvidersConfig{
			OpenAI: OpenAIConfig{
				APIKey:      getEnv("OPENAI_API_KEY", ""),
				BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
				MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 300),
				Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
				CallTimeout: getEnvAsDuration("OPENAI_CALL_TIMEOUT", 0),
				MaxRetries:  getEnvAsInt("OPENAI_MAX_RETRIES", 2),
				RetryDelay:  getEnvAsDuration("OPENAI_RETRY_DELAY", 500*time.Millisecond),
				BreakerTrip: getEnvAsInt("OPENAI_BREAKER_TRIP", 5),
			},
		},
		KnowledgeBase: KnowledgeBaseConfig{
			Path:     getEnv("KB_PATH", "public/kb.json"),
			CacheTTL: getEnvAsDuration("KB_CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			QueryRatePerSec: getEnvAsFloat("QUERY_RATE_PER_SEC", 2),
			QueryBurst:      getEnvAsInt("QUERY_BURST", 10),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if cfg.Auth.JWTSecret == "" && !cfg.IsProduction() {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	// Database validation (DATABASE_URL or DB_* vars)
	if c.Database.ConnectionString == "" && c.Database.Host == "" {
		return fmt.Errorf("database configuration required: set DATABASE_URL or DB_HOST")
	}
	if c.Database.ConnectionString == "" {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.IsProduction() && c.Auth.JWTSecret == devJWTSecret {
		return fmt.Errorf("JWT_SECRET must not use the development default in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31")
	}

	if c.KnowledgeBase.Path == "" {
		return fmt.Errorf("knowledge base path is required")
	}

	if c.RateLimit.QueryRatePerSec <= 0 || c.RateLimit.QueryBurst <= 0 {
		return fmt.Errorf("query rate limit and burst must be positive")
	}

	// Observability validation
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// DSN returns the PostgreSQL connection string.
// Uses ConnectionString (from DATABASE_URL) when set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password). Parses ConnectionString when set.
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err == nil {
			host := u.Hostname()
			port := u.Port()
			if port == "" {
				port = "5432"
			}
			db := strings.TrimPrefix(u.Path, "/")
			return fmt.Sprintf("host=%s port=%s database=%s", host, port, db)
		}
		return "host=<from DATABASE_URL>"
	}
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

// loadDatabaseConfig loads database config from DATABASE_URL or DB_* env vars
func loadDatabaseConfig() DatabaseConfig {
	pool := DatabaseConfig{
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		pool.ConnectionString = dbURL
		return pool
	}
	pool.Host = getEnv("DB_HOST", "localhost")
	pool.Port = getEnvAsInt("DB_PORT", 5432)
	pool.User = getEnv("DB_USER", "blog")
	pool.Password = getEnv("DB_PASSWORD", "blog")
	pool.Database = getEnv("DB_NAME", "blog")
	pool.SSLMode = getEnv("DB_SSLMODE", "disable")
	return pool
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		if value := os.Getenv(key); value != "" {
			if p, err := strconv.Atoi(value); err == nil {
				return p
			}
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
