//go:build !integration

package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service/cache"
)

func planWithKcal(kcal float64) model.MealPlan {
	return model.MealPlan{Mode: model.ModeSingleDay, TotalKcal: kcal, MealsPerDay: 4}
}

// newTestCache returns a cache with a controllable clock.
func newTestCache(capacity int, ttl time.Duration) (*ttlCache, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newTTLCache(capacity, ttl)
	c.clock = func() time.Time { return now }
	return c, &now
}

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*ttlCache, *time.Time)
		key           string
		expectedValue model.MealPlan
		expectedFound bool
	}{
		{
			name: "returns value when exists and not expired",
			setup: func(c *ttlCache, _ *time.Time) {
				c.Set("a", planWithKcal(1650))
			},
			key:           "a",
			expectedValue: planWithKcal(1650),
			expectedFound: true,
		},
		{
			name:          "returns false when key not found",
			setup:         func(*ttlCache, *time.Time) {},
			key:           "missing",
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setup: func(c *ttlCache, now *time.Time) {
				c.Set("a", planWithKcal(1650))
				*now = now.Add(2 * time.Minute)
			},
			key:           "a",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, now := newTestCache(10, time.Minute)
			defer c.Stop()
			tt.setup(c, now)

			value, found := c.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

func TestTTLCache_Set(t *testing.T) {
	t.Run("evicts LRU when at capacity", func(t *testing.T) {
		c, _ := newTestCache(2, time.Minute)
		defer c.Stop()

		c.Set("1", planWithKcal(1))
		c.Set("2", planWithKcal(2))
		c.Get("1")
		c.Set("3", planWithKcal(3))

		_, ok1 := c.Get("1")
		_, ok2 := c.Get("2")
		_, ok3 := c.Get("3")
		assert.True(t, ok1, "recently used entry kept")
		assert.False(t, ok2, "least recently used entry evicted")
		assert.True(t, ok3)
		assert.Equal(t, int64(1), c.Metrics().Evictions)
	})

	t.Run("updates existing entry", func(t *testing.T) {
		c, _ := newTestCache(10, time.Minute)
		defer c.Stop()

		c.Set("a", planWithKcal(100))
		c.Set("a", planWithKcal(500))

		value, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 500.0, value.TotalKcal)
		assert.Equal(t, 1, c.Metrics().Size)
	})
}

func TestTTLCache_InvalidateAndClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Stop()

	c.Set("a", planWithKcal(1))
	c.Set("b", planWithKcal(2))

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Metrics().Size)
}

func TestTTLCache_RemoveExpired(t *testing.T) {
	c, now := newTestCache(10, time.Minute)
	defer c.Stop()

	c.Set("old", planWithKcal(1))
	*now = now.Add(30 * time.Second)
	c.Set("new", planWithKcal(2))
	*now = now.Add(45 * time.Second)

	c.removeExpired()

	assert.Equal(t, 1, c.Metrics().Size)
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestTTLCache_Stop(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	c.Set("a", planWithKcal(1))

	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}

func TestTTLCache_Metrics(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Stop()

	c.Set("a", planWithKcal(1))
	c.Get("a")
	c.Get("b")
	c.Set("b", planWithKcal(2))
	c.Set("c", planWithKcal(3))

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 3, m.Size)
	assert.Equal(t, 10, m.Capacity)
	assert.InDelta(t, 0.5, m.HitRatio(), 1e-9)
}

func TestTTLCache_ImplementsInterface(t *testing.T) {
	var _ cache.Cache = (*ttlCache)(nil)
	var _ cache.CacheWithMetrics = (*ttlCache)(nil)
}

func TestTTLCache_Concurrency(t *testing.T) {
	c := newTTLCache(100, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				key := fmt.Sprintf("%d-%d", worker, j)
				c.Set(key, planWithKcal(float64(j)))
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Metrics().Size)
}
