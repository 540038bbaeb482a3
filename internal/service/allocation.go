package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/metrics"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service/cache"
)

// DefaultThresholdFactor switches to multi-day planning once a pool holds
// more than this many days of energy.
const DefaultThresholdFactor = 1.5

// ThresholdPolicy decides whether a pool needs more than one day.
type ThresholdPolicy interface {
	NeedsMultiDay(totalKcal, dailyCap float64) bool
}

// CapFactorPolicy plans over several days when the pool exceeds Factor × dailyCap.
type CapFactorPolicy struct {
	Factor float64
}

// NeedsMultiDay reports whether totalKcal exceeds Factor × dailyCap.
func (p CapFactorPolicy) NeedsMultiDay(totalKcal, dailyCap float64) bool {
	return totalKcal > p.Factor*dailyCap
}

// AllocationRequest describes one call to Allocator.Allocate.
type AllocationRequest struct {
	Items       []model.Item
	Resolver    DensityResolver
	DailyCap    float64
	ExcessCap   float64
	MealsPerDay int
	// Policy overrides the engine's threshold policy when set.
	Policy ThresholdPolicy
	// ForceMultiDay skips the threshold policy.
	ForceMultiDay bool
	// CatalogVersion identifies the resolver's catalog; 0 is the built-in one.
	CatalogVersion int
	// Cacheable marks the resolver as fully described by CatalogVersion, so
	// the result may be served from the cache.
	Cacheable bool
}

// Allocator defines the allocation operations.
type Allocator interface {
	AllocateSingleDay(items []model.Item, mealsPerDay int) (model.SlotAssignment, error)
	AllocateMultiDay(items []model.Item, resolver DensityResolver, dailyCap, excessCap float64, mealsPerDay int) ([]model.SlotAssignment, error)
	Allocate(req AllocationRequest) (model.MealPlan, error)
	// InvalidateCache drops cached plans, e.g. after a catalog change.
	InvalidateCache()
}

// Option configures an AllocationEngine.
type Option func(*AllocationEngine)

// AllocationEngine lays a pool of food out over days and meal slots.
// It holds no per-call state and is safe for concurrent use.
type AllocationEngine struct {
	planner     *CapacityPlanner
	distributor SlotDistributor
	policy      ThresholdPolicy
	cache       cache.Cache
}

// NewAllocationEngine creates an engine with the given options.
func NewAllocationEngine(opts ...Option) *AllocationEngine {
	e := &AllocationEngine{
		planner: NewCapacityPlanner(),
		policy:  CapFactorPolicy{Factor: DefaultThresholdFactor},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithPlanner replaces the capacity planner.
func WithPlanner(p *CapacityPlanner) Option {
	return func(e *AllocationEngine) {
		if p != nil {
			e.planner = p
		}
	}
}

// WithThresholdPolicy replaces the default threshold policy.
func WithThresholdPolicy(p ThresholdPolicy) Option {
	return func(e *AllocationEngine) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(e *AllocationEngine) {
		if capacity > 0 {
			e.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithShardedCache enables a sharded result cache.
func WithShardedCache(capacity int, ttl time.Duration, shards int) Option {
	return func(e *AllocationEngine) {
		if capacity > 0 {
			e.cache = NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(e *AllocationEngine) {
		e.cache = c
	}
}

// AllocateSingleDay splits the whole pool into one day's meal slots
// without checking any energy cap. Zero-mass items are dropped.
func (e *AllocationEngine) AllocateSingleDay(items []model.Item, mealsPerDay int) (model.SlotAssignment, error) {
	pool, err := filterPool(items)
	if err != nil {
		return model.SlotAssignment{}, err
	}
	return e.distributor.Distribute(pool, mealsPerDay)
}

// AllocateMultiDay plans the pool over as many days as needed and splits
// each day into meal slots.
func (e *AllocationEngine) AllocateMultiDay(items []model.Item, resolver DensityResolver, dailyCap, excessCap float64, mealsPerDay int) ([]model.SlotAssignment, error) {
	if model.Slots(mealsPerDay) == nil {
		return nil, fmt.Errorf("%w: %d meals per day, expected 4 or 5", ErrInvalidSlotCount, mealsPerDay)
	}

	days, err := e.planner.Plan(items, resolver, dailyCap, excessCap)
	if err != nil {
		return nil, err
	}

	plan := make([]model.SlotAssignment, 0, len(days))
	for _, day := range days {
		assignment, err := e.distributor.Distribute(day.Items, mealsPerDay)
		if err != nil {
			return nil, err
		}
		plan = append(plan, assignment)
	}
	return plan, nil
}

// Allocate validates the request, picks single- or multi-day planning and
// returns the full meal plan.
func (e *AllocationEngine) Allocate(req AllocationRequest) (model.MealPlan, error) {
	start := time.Now()

	key := ""
	if e.cache != nil && req.Cacheable {
		key = e.fingerprint(req)
		if plan, ok := e.cache.Get(key); ok {
			return plan, nil
		}
	}

	plan, err := e.allocate(req)
	mode := string(plan.Mode)
	if err != nil {
		if mode == "" {
			mode = "unknown"
		}
		metrics.RecordAllocation(time.Since(start), mode, "error")
		return model.MealPlan{}, err
	}
	metrics.RecordAllocation(time.Since(start), mode, "success")
	if plan.Mode == model.ModeMultiDay {
		metrics.RecordPlannedDays(plan.DayCount())
	}

	if key != "" {
		e.cache.Set(key, plan)
	}
	return plan, nil
}

func (e *AllocationEngine) allocate(req AllocationRequest) (model.MealPlan, error) {
	if _, err := validateCapacity(req.DailyCap, req.ExcessCap); err != nil {
		return model.MealPlan{}, err
	}
	pool, err := filterPool(req.Items)
	if err != nil {
		return model.MealPlan{}, err
	}
	if model.Slots(req.MealsPerDay) == nil {
		return model.MealPlan{}, fmt.Errorf("%w: %d meals per day, expected 4 or 5", ErrInvalidSlotCount, req.MealsPerDay)
	}
	if req.Resolver == nil {
		req.Resolver = NewCatalogResolver(nil)
	}

	// Densities are resolved once per name so the planner sees the same
	// table the threshold decision was based on.
	resolver := newTrackingResolver(req.Resolver)
	densities := make(map[string]float64, len(pool))
	totalKcal := 0.0
	for _, item := range pool {
		density, ok := densities[item.Name]
		if !ok {
			density = resolver.Resolve(item.Name)
			densities[item.Name] = density
		}
		totalKcal += model.Kcal(item.Grams, density)
	}
	snapshot := DensityFunc(func(name string) float64 { return densities[name] })

	plan := model.MealPlan{
		TotalKcal:        totalKcal,
		DailyCap:         req.DailyCap,
		ExcessCap:        req.ExcessCap,
		MealsPerDay:      req.MealsPerDay,
		DensityFallbacks: resolver.fallbacks,
		CatalogVersion:   req.CatalogVersion,
	}

	policy := e.policy
	if req.Policy != nil {
		policy = req.Policy
	}

	log := logger.Component("allocation")
	if !req.ForceMultiDay && !policy.NeedsMultiDay(totalKcal, req.DailyCap) {
		plan.Mode = model.ModeSingleDay
		assignment, err := e.distributor.Distribute(pool, req.MealsPerDay)
		if err != nil {
			return plan, err
		}
		plan.Days = []model.DayPlan{{Day: 1, Kcal: totalKcal, Meals: assignment}}
		log.Debug().Float64("total_kcal", totalKcal).Msg("Allocated single day")
		return plan, nil
	}

	plan.Mode = model.ModeMultiDay
	days, err := e.planner.Plan(pool, snapshot, req.DailyCap, req.ExcessCap)
	if err != nil {
		return plan, err
	}

	plan.Days = make([]model.DayPlan, 0, len(days))
	for i, day := range days {
		assignment, err := e.distributor.Distribute(day.Items, req.MealsPerDay)
		if err != nil {
			return plan, err
		}
		plan.Days = append(plan.Days, model.DayPlan{Day: i + 1, Kcal: day.Kcal, Meals: assignment})
	}

	log.Debug().
		Float64("total_kcal", totalKcal).
		Int("days", len(plan.Days)).
		Int("density_fallbacks", plan.DensityFallbacks).
		Msg("Allocated multi day")
	return plan, nil
}

// fingerprint hashes every input that can change the result.
func (e *AllocationEngine) fingerprint(req AllocationRequest) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(req.CatalogVersion))
	for _, v := range []float64{req.DailyCap, req.ExcessCap} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(req.MealsPerDay))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(req.ForceMultiDay))
	b.WriteByte('|')
	policy := e.policy
	if req.Policy != nil {
		policy = req.Policy
	}
	b.WriteString(fmt.Sprintf("%#v", policy))
	for _, item := range req.Items {
		b.WriteByte('|')
		b.WriteString(item.Name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(item.Grams, 'g', -1, 64))
	}
	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

// InvalidateCache clears the result cache.
func (e *AllocationEngine) InvalidateCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Stop releases the cache's background resources.
func (e *AllocationEngine) Stop() {
	if e.cache != nil {
		e.cache.Stop()
	}
}
