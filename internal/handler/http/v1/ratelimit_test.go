package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserRateLimiter_Refill(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newUserRateLimiter(3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("u"), "request %d", i)
	}
	assert.False(t, rl.allow("u"))

	// Один токен восстанавливается за 20 секунд
	now = now.Add(20 * time.Second)
	assert.True(t, rl.allow("u"))
	assert.False(t, rl.allow("u"))
}

func TestUserRateLimiter_EvictsStale(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newUserRateLimiter(1)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("old"))
	now = now.Add(2 * time.Hour)
	assert.True(t, rl.allow("new"))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "old")
	assert.Contains(t, rl.limiters, "new")
}
