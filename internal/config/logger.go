package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger returns a human-readable logger in development and a JSON
// production logger everywhere else.
func NewLogger(env string) (*zap.Logger, error) {
	var c zap.Config
	var opts []zap.Option
	if env == "development" {
		c = zap.NewDevelopmentConfig()
		opts = append(opts, zap.AddStacktrace(zap.ErrorLevel))
	} else {
		c = zap.NewProductionConfig()
		c.DisableStacktrace = true
	}

	l, err := c.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return l, nil
}
