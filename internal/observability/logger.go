package observability

import (
	"fmt"

	"github.com/upb/blog-platform/config"
	"go.uber.org/zap"
)

// NewLogger builds a zap logger from configuration. LogFormat "text" selects
// the human readable development encoder; anything else logs JSON.
func NewLogger(cfg config.ObservabilityConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	if cfg.LogFormat == "text" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
