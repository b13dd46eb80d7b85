package logging

import (
	"go.uber.org/zap"
)

// New builds a zap logger. format "console" selects the development config,
// anything else the JSON production config; level accepts the usual zap
// level names and falls back to the config default when empty.
func New(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if level != "" {
		if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	return cfg.Build()
}
