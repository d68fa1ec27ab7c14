package spoonacular

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pageza/mealboard/backend/internal/apperr"
)

// Budget guards the provider's call quota. Allow is checked before every
// request and Record is called after every successful one.
type Budget interface {
	Allow(ctx context.Context) error
	Record(ctx context.Context) error
	Status(ctx context.Context) (BudgetStatus, error)
}

// BudgetStatus describes the current window.
type BudgetStatus struct {
	Used    int       `json:"used"`
	Quota   int       `json:"quota"`
	ResetAt time.Time `json:"reset_at"`
}

// Remaining is the number of calls left in the window.
func (s BudgetStatus) Remaining() int {
	if s.Used >= s.Quota {
		return 0
	}
	return s.Quota - s.Used
}

func exhausted(quota int, window time.Duration, resetAt time.Time) error {
	return apperr.New(apperr.KindUpstreamRateLimited,
		"external call budget of %d per %v exhausted, resets at %s", quota, window, resetAt.UTC().Format(time.RFC3339))
}

// MemoryBudget is a process-scoped fixed-window counter. It is not shared
// between instances; use RedisBudget for that.
type MemoryBudget struct {
	mu          sync.Mutex
	quota       int
	window      time.Duration
	used        int
	windowStart time.Time
	now         func() time.Time
}

// NewMemoryBudget creates a budget of quota calls per window.
func NewMemoryBudget(quota int, window time.Duration) *MemoryBudget {
	return &MemoryBudget{
		quota:       quota,
		window:      window,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (b *MemoryBudget) WithClock(now func() time.Time) *MemoryBudget {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
	b.windowStart = now()
	return b
}

// rollLocked resets the counter when the window has elapsed.
func (b *MemoryBudget) rollLocked() {
	now := b.now()
	if now.Sub(b.windowStart) >= b.window {
		b.used = 0
		b.windowStart = now
	}
}

func (b *MemoryBudget) Allow(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollLocked()
	if b.used >= b.quota {
		return exhausted(b.quota, b.window, b.windowStart.Add(b.window))
	}
	return nil
}

func (b *MemoryBudget) Record(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollLocked()
	b.used++
	return nil
}

func (b *MemoryBudget) Status(ctx context.Context) (BudgetStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rollLocked()
	return BudgetStatus{Used: b.used, Quota: b.quota, ResetAt: b.windowStart.Add(b.window)}, nil
}

// Used returns the number of calls recorded in the current window.
func (b *MemoryBudget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

func (b *MemoryBudget) String() string {
	return fmt.Sprintf("memory budget %d/%v", b.quota, b.window)
}
