package v1

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/incident_map/internal/auth"
	"golang.org/x/time/rate"
)

// userRateLimiter ограничивает частоту запросов отдельно для каждого пользователя
type userRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// newUserRateLimiter: не больше perMinute запросов в минуту на пользователя
func newUserRateLimiter(perMinute int) *userRateLimiter {
	return &userRateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (rl *userRateLimiter) allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, ok := rl.limiters[userID]
	if !ok {
		rl.evictStale(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[userID] = entry
	}
	entry.lastAccess = now
	return entry.limiter.AllowN(now, 1)
}

// evictStale удаляет лимитеры пользователей, не появлявшихся больше часа
func (rl *userRateLimiter) evictStale(now time.Time) {
	threshold := now.Add(-time.Hour)
	for id, entry := range rl.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(rl.limiters, id)
		}
	}
}

func (rl *userRateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(auth.UserID(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests", "type": "rate_limited"})
			return
		}
		c.Next()
	}
}
