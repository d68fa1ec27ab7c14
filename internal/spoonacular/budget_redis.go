package spoonacular

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBudget keeps the call counter in Redis so every instance of the
// service draws from the same quota. Windows are fixed and aligned to the
// window length; each window has its own key that expires with it.
type RedisBudget struct {
	redis     *redis.Client
	quota     int
	window    time.Duration
	keyPrefix string
	now       func() time.Time
}

// NewRedisBudget creates a shared budget of quota calls per window.
func NewRedisBudget(client *redis.Client, quota int, window time.Duration, keyPrefix string) *RedisBudget {
	if keyPrefix == "" {
		keyPrefix = "budget:spoonacular"
	}
	return &RedisBudget{
		redis:     client,
		quota:     quota,
		window:    window,
		keyPrefix: keyPrefix,
		now:       time.Now,
	}
}

func (b *RedisBudget) windowKey() (string, time.Time) {
	windowStart := b.now().Truncate(b.window)
	return fmt.Sprintf("%s:%d", b.keyPrefix, windowStart.Unix()), windowStart.Add(b.window)
}

func (b *RedisBudget) count(ctx context.Context, key string) (int, error) {
	count, err := b.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read budget counter: %w", err)
	}
	return count, nil
}

func (b *RedisBudget) Allow(ctx context.Context) error {
	key, resetAt := b.windowKey()
	count, err := b.count(ctx, key)
	if err != nil {
		return err
	}
	if count >= b.quota {
		return exhausted(b.quota, b.window, resetAt)
	}
	return nil
}

func (b *RedisBudget) Record(ctx context.Context) error {
	key, _ := b.windowKey()

	pipe := b.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, b.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record external call: %w", err)
	}
	return nil
}

func (b *RedisBudget) Status(ctx context.Context) (BudgetStatus, error) {
	key, resetAt := b.windowKey()
	count, err := b.count(ctx, key)
	if err != nil {
		return BudgetStatus{}, err
	}
	return BudgetStatus{Used: count, Quota: b.quota, ResetAt: resetAt}, nil
}
