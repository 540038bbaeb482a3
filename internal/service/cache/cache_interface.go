// Package cache defines the contract of the allocation result cache.
package cache

import "github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"

// Cache stores meal plans by request fingerprint.
type Cache interface {
	Get(key string) (model.MealPlan, bool)
	Set(key string, value model.MealPlan)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// HitRatio returns hits / (hits + misses), or 0 with no lookups.
func (m Metrics) HitRatio() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
