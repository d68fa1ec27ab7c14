package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/mealboard/backend/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		env     config.Environment
		verbose bool
		debug   bool
	}{
		{config.Development, false, true},
		{config.Test, false, true},
		{config.Production, false, false},
		{config.Production, true, true},
		{config.CI, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			logger, err := New(tt.env, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
