//go:build !integration

package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// countingResolver resolves every name to a fixed density and counts calls.
type countingResolver struct {
	density float64
	calls   atomic.Int64
}

func (r *countingResolver) Resolve(string) float64 {
	r.calls.Add(1)
	return r.density
}

func TestAllocationEngine_Allocate(t *testing.T) {
	catalog := NewCatalogResolver(DefaultCatalog)

	tests := []struct {
		name          string
		req           AllocationRequest
		wantMode      model.PlanMode
		wantDayKcal   []float64
		wantTotal     float64
		wantFallbacks int
	}{
		{
			name: "small pool stays on one day",
			req: AllocationRequest{
				Items:       []model.Item{{Name: "rice", Grams: 500}},
				Resolver:    catalog,
				DailyCap:    2000,
				MealsPerDay: 4,
			},
			wantMode:    model.ModeSingleDay,
			wantDayKcal: []float64{1720},
			wantTotal:   1720,
		},
		{
			name: "single day may exceed the cap below the threshold",
			req: AllocationRequest{
				Items:       []model.Item{{Name: "x", Grams: 3000}},
				Resolver:    DensityFunc(func(string) float64 { return 100 }),
				DailyCap:    2000,
				MealsPerDay: 4,
			},
			wantMode:    model.ModeSingleDay,
			wantDayKcal: []float64{3000},
			wantTotal:   3000,
		},
		{
			name: "large pool is planned over several days",
			req: AllocationRequest{
				Items:       []model.Item{{Name: "rice", Grams: 1000}, {Name: "chicken", Grams: 500}},
				Resolver:    catalog,
				DailyCap:    2000,
				MealsPerDay: 4,
			},
			wantMode:    model.ModeMultiDay,
			wantDayKcal: []float64{2000, 2000, 265},
			wantTotal:   4265,
		},
		{
			name: "forced multi day",
			req: AllocationRequest{
				Items:         []model.Item{{Name: "rice", Grams: 500}},
				Resolver:      catalog,
				DailyCap:      2000,
				MealsPerDay:   5,
				ForceMultiDay: true,
			},
			wantMode:    model.ModeMultiDay,
			wantDayKcal: []float64{1720},
			wantTotal:   1720,
		},
		{
			name: "request policy overrides engine policy",
			req: AllocationRequest{
				Items:       []model.Item{{Name: "rice", Grams: 1000}},
				Resolver:    catalog,
				DailyCap:    2000,
				MealsPerDay: 4,
				Policy:      CapFactorPolicy{Factor: 2},
			},
			wantMode:    model.ModeSingleDay,
			wantDayKcal: []float64{3440},
			wantTotal:   3440,
		},
		{
			name: "unknown item resolves to default density",
			req: AllocationRequest{
				Items:       []model.Item{{Name: "Mystery Stew", Grams: 100}},
				DailyCap:    2000,
				MealsPerDay: 4,
			},
			wantMode:      model.ModeSingleDay,
			wantDayKcal:   []float64{100},
			wantTotal:     100,
			wantFallbacks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewAllocationEngine()

			plan, err := engine.Allocate(tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMode, plan.Mode)
			assert.InDelta(t, tt.wantTotal, plan.TotalKcal, 1e-6)
			assert.Equal(t, tt.wantFallbacks, plan.DensityFallbacks)
			assert.Equal(t, tt.req.MealsPerDay, plan.MealsPerDay)
			require.Equal(t, len(tt.wantDayKcal), plan.DayCount())
			for i, want := range tt.wantDayKcal {
				assert.Equal(t, i+1, plan.Days[i].Day)
				assert.InDelta(t, want, plan.Days[i].Kcal, 1e-6)
				assert.Len(t, plan.Days[i].Meals.Meals, tt.req.MealsPerDay)
			}
		})
	}
}

func TestAllocationEngine_Allocate_Errors(t *testing.T) {
	rice := []model.Item{{Name: "rice", Grams: 100}}

	tests := []struct {
		name    string
		req     AllocationRequest
		wantErr error
	}{
		{
			name:    "zero capacity even for a small pool",
			req:     AllocationRequest{Items: rice, DailyCap: 0, MealsPerDay: 4},
			wantErr: ErrInvalidCapacity,
		},
		{
			name:    "negative mass",
			req:     AllocationRequest{Items: []model.Item{{Name: "rice", Grams: -1}}, DailyCap: 2000, MealsPerDay: 4},
			wantErr: ErrInvalidMass,
		},
		{
			name:    "three meals",
			req:     AllocationRequest{Items: rice, DailyCap: 2000, MealsPerDay: 3},
			wantErr: ErrInvalidSlotCount,
		},
		{
			name: "zero density in multi day",
			req: AllocationRequest{
				Items:         rice,
				Resolver:      DensityFunc(func(string) float64 { return 0 }),
				DailyCap:      2000,
				MealsPerDay:   4,
				ForceMultiDay: true,
			},
			wantErr: ErrAllocationDidNotConverge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewAllocationEngine().Allocate(tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, model.MealPlan{}, plan)
		})
	}
}

func TestAllocationEngine_Allocate_Cache(t *testing.T) {
	engine := NewAllocationEngine(WithCache(10, time.Minute))
	defer engine.Stop()

	resolver := &countingResolver{density: 344}
	req := AllocationRequest{
		Items:       []model.Item{{Name: "rice", Grams: 1000}},
		Resolver:    resolver,
		DailyCap:    2000,
		MealsPerDay: 4,
		Cacheable:   true,
	}

	first, err := engine.Allocate(req)
	require.NoError(t, err)
	calls := resolver.calls.Load()

	second, err := engine.Allocate(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, resolver.calls.Load(), "second call served from cache")

	req.CatalogVersion = 2
	_, err = engine.Allocate(req)
	require.NoError(t, err)
	assert.Greater(t, resolver.calls.Load(), calls, "new catalog version misses the cache")

	calls = resolver.calls.Load()
	engine.InvalidateCache()
	_, err = engine.Allocate(req)
	require.NoError(t, err)
	assert.Greater(t, resolver.calls.Load(), calls, "invalidated cache recomputes")

	calls = resolver.calls.Load()
	req.Cacheable = false
	_, err = engine.Allocate(req)
	require.NoError(t, err)
	assert.Greater(t, resolver.calls.Load(), calls, "uncacheable request recomputes")
}

func TestAllocationEngine_Allocate_Concurrent(t *testing.T) {
	engine := NewAllocationEngine(WithShardedCache(64, time.Minute, 4))
	defer engine.Stop()

	req := AllocationRequest{
		Items:       []model.Item{{Name: "rice", Grams: 1000}, {Name: "chicken", Grams: 500}},
		Resolver:    NewCatalogResolver(DefaultCatalog),
		DailyCap:    2000,
		MealsPerDay: 4,
		Cacheable:   true,
	}
	want, err := NewAllocationEngine().Allocate(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]model.MealPlan, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.Allocate(req)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestAllocationEngine_AllocateSingleDay(t *testing.T) {
	engine := NewAllocationEngine()

	assignment, err := engine.AllocateSingleDay([]model.Item{
		{Name: "rice", Grams: 4000},
		{Name: "apple", Grams: 0},
	}, 4)
	require.NoError(t, err)

	require.Len(t, assignment.Meals, 4)
	for _, meal := range assignment.Meals {
		assert.Equal(t, []model.Item{{Name: "rice", Grams: 1000}}, meal.Items)
	}

	_, err = engine.AllocateSingleDay([]model.Item{{Name: "rice", Grams: -1}}, 4)
	assert.ErrorIs(t, err, ErrInvalidMass)

	_, err = engine.AllocateSingleDay([]model.Item{{Name: "rice", Grams: 1}}, 6)
	assert.ErrorIs(t, err, ErrInvalidSlotCount)
}

func TestAllocationEngine_AllocateMultiDay(t *testing.T) {
	engine := NewAllocationEngine()
	resolver := NewCatalogResolver(DefaultCatalog)

	plan, err := engine.AllocateMultiDay([]model.Item{{Name: "rice", Grams: 1000}}, resolver, 2000, 0, 5)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	day1, ok := plan[0].Items(model.SlotSecondSnack)
	require.True(t, ok)
	day2, _ := plan[1].Items(model.SlotSecondSnack)
	assert.InDelta(t, 1000.0/5, day1[0].Grams+day2[0].Grams, 1e-6)

	_, err = engine.AllocateMultiDay([]model.Item{{Name: "rice", Grams: 1000}}, resolver, 0, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidSlotCount, "slot count is checked before capacity")

	_, err = engine.AllocateMultiDay([]model.Item{{Name: "rice", Grams: 1000}}, resolver, 0, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestCapFactorPolicy(t *testing.T) {
	policy := CapFactorPolicy{Factor: DefaultThresholdFactor}

	assert.False(t, policy.NeedsMultiDay(3000, 2000))
	assert.True(t, policy.NeedsMultiDay(3000.01, 2000))
	assert.False(t, policy.NeedsMultiDay(0, 2000))
}

func TestAllocationEngine_Fingerprint(t *testing.T) {
	engine := NewAllocationEngine()
	base := AllocationRequest{
		Items:       []model.Item{{Name: "rice", Grams: 1000}},
		DailyCap:    2000,
		MealsPerDay: 4,
	}
	key := engine.fingerprint(base)
	assert.Equal(t, key, engine.fingerprint(base))

	variants := []func(*AllocationRequest){
		func(r *AllocationRequest) { r.DailyCap = 2100 },
		func(r *AllocationRequest) { r.ExcessCap = 10 },
		func(r *AllocationRequest) { r.MealsPerDay = 5 },
		func(r *AllocationRequest) { r.ForceMultiDay = true },
		func(r *AllocationRequest) { r.CatalogVersion = 3 },
		func(r *AllocationRequest) { r.Policy = CapFactorPolicy{Factor: 2} },
		func(r *AllocationRequest) { r.Items = []model.Item{{Name: "rice", Grams: 1001}} },
	}
	for i, mutate := range variants {
		req := base
		mutate(&req)
		assert.NotEqual(t, key, engine.fingerprint(req), "variant %d", i)
	}
}
