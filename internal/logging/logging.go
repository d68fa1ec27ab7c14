// Package logging builds the zap logger shared by the binaries.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/mealboard/backend/config"
)

// New returns a JSON production logger. Development and test environments log
// at debug level, as does verbose.
func New(env config.Environment, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose || env == config.Development || env == config.Test {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.InitialFields = map[string]interface{}{"env": string(env)}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
