package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/config"
)

func TestNewGateway(t *testing.T) {
	base := config.Config{
		SpoonacularAPIKey: "key",
		ExternalQuota:     10,
		ExternalWindow:    time.Hour,
	}

	gw, err := NewGateway(&config.Config{}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, gw)

	cfg := base
	gw, err = NewGateway(&cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, gw)

	cfg.BudgetBackend = config.BudgetRedis
	_, err = NewGateway(&cfg, nil, zap.NewNop())
	assert.Error(t, err)

	cfg.BudgetBackend = "etcd"
	_, err = NewGateway(&cfg, nil, zap.NewNop())
	assert.Error(t, err)
}
