// Package rlog provides the structured logger that cmd/ruleforge builds and
// hands to internal/orchestrator. pkg/rulekit stays logging-free: engines report
// everything through rulekit.InferenceResult, and this package only ever
// logs one layer up, around a run rather than inside it.
package rlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger selected by RULEFORGE_ENV: "development" gets the
// development console encoder at debug level; any other value, or none,
// gets the production JSON output at info level.
func New() (*zap.Logger, error) {
	if os.Getenv("RULEFORGE_ENV") == "development" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProduction()
}

// Must panics if New fails; used at process startup where there is no
// sensible way to continue without a logger.
func Must() *zap.Logger {
	logger, err := New()
	if err != nil {
		panic(err)
	}
	return logger
}
