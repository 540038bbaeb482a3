package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
)

const defaultNumShards = 16

// bucket is the fixed-window budget of one caller.
type bucket struct {
	left    int
	resetAt time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// ShardedRateLimiter gives every caller rate requests per window. Callers
// are hashed onto shards so busy bot users do not contend on one lock.
type ShardedRateLimiter struct {
	shards   []*limiterShard
	rate     int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter with defaultNumShards shards.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter and starts its janitor. Call Stop
// to end it.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	rl := &ShardedRateLimiter{
		shards: make([]*limiterShard, numShards),
		rate:   rate,
		window: window,
		stopCh: make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}

	go rl.janitor()
	return rl
}

func (rl *ShardedRateLimiter) shardFor(caller string) *limiterShard {
	return rl.shards[xxhash.Sum64String(caller)%uint64(len(rl.shards))]
}

// take spends one request from caller's budget. It reports whether the
// request may proceed, how many remain and when the window resets.
func (rl *ShardedRateLimiter) take(caller string) (allowed bool, remaining int, resetAt time.Time) {
	shard := rl.shardFor(caller)
	now := time.Now()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, ok := shard.buckets[caller]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{left: rl.rate, resetAt: now.Add(rl.window)}
		shard.buckets[caller] = b
	}
	if b.left <= 0 {
		return false, 0, b.resetAt
	}
	b.left--
	return true, b.left, b.resetAt
}

// UserRateLimit limits requests per Telegram user, so users sharing one bot
// address keep separate budgets. Anonymous requests are limited by address.
func (rl *ShardedRateLimiter) UserRateLimit() gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)

	return func(c *gin.Context) {
		allowed, remaining, resetAt := rl.take(rl.getUserIdentifier(c))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if allowed {
			c.Next()
			return
		}

		wait := int(math.Ceil(time.Until(resetAt).Seconds()))
		if wait < 1 {
			wait = 1
		}
		c.Header("Retry-After", strconv.Itoa(wait))

		message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	}
}

func (rl *ShardedRateLimiter) getUserIdentifier(c *gin.Context) string {
	if id := GetUserID(c); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanupExpired()
		}
	}
}

// cleanupExpired forgets callers whose window ended more than one window ago.
func (rl *ShardedRateLimiter) cleanupExpired() {
	cutoff := time.Now().Add(-rl.window)

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for caller, b := range shard.buckets {
			if b.resetAt.Before(cutoff) {
				delete(shard.buckets, caller)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the janitor. It is safe to call more than once.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked callers, in total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.buckets)
		shard.mu.Unlock()
		total += perShard[i]
	}
	return total, perShard
}
