package kit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(service string, level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.InitialFields = map[string]any{"service": service}
	return cfg.Build()
}
