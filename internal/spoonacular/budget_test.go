package spoonacular

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/apperr"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoryBudgetExhaustsAndResets(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	budget := NewMemoryBudget(3, time.Hour).WithClock(clock.Now)

	for i := 0; i < 3; i++ {
		require.NoError(t, budget.Allow(ctx))
		require.NoError(t, budget.Record(ctx))
	}

	err := budget.Allow(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUpstreamRateLimited))

	status, err := budget.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Used)
	assert.Equal(t, 0, status.Remaining())
	assert.Equal(t, clock.now.Add(time.Hour), status.ResetAt)

	clock.Advance(time.Hour)
	require.NoError(t, budget.Allow(ctx))
	require.NoError(t, budget.Record(ctx))
	assert.Equal(t, 1, budget.Used())
}

func TestMemoryBudgetZeroQuotaAlwaysRefuses(t *testing.T) {
	budget := NewMemoryBudget(0, time.Minute)
	assert.ErrorIs(t, budget.Allow(context.Background()), apperr.ErrUpstreamRateLimited)
}
