package service

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

const (
	// massEpsilon is the mass in grams below which an item counts as exhausted.
	massEpsilon = 1e-9
	// energyEpsilon is the energy slack in kcal tolerated by the day cap.
	energyEpsilon = 1e-6
	// conservationTolerance is the mass in grams an allocation may leave unassigned.
	conservationTolerance = 1e-6

	// DefaultMaxDays bounds the length of a multi-day plan.
	DefaultMaxDays = 366
	// convergenceSlack is added to the day estimate to absorb rounding.
	convergenceSlack = 2
)

var (
	// ErrInvalidCapacity is returned when dailyCap + excessCap is not a positive finite number.
	ErrInvalidCapacity = errors.New("invalid capacity")
	// ErrInvalidMass is returned for negative or non-finite item masses.
	ErrInvalidMass = model.ErrInvalidMass
	// ErrInvalidSlotCount is returned when meals per day is not 4 or 5.
	ErrInvalidSlotCount = errors.New("invalid slot count")
	// ErrAllocationDidNotConverge is returned when planning stops making
	// progress, which points at a broken resolver rather than a bad pool.
	ErrAllocationDidNotConverge = errors.New("allocation did not converge")
	// ErrPlanTooLong is returned when a pool needs more days than the planner allows.
	ErrPlanTooLong = errors.New("plan exceeds day limit")
)

// PlannerOption configures a CapacityPlanner.
type PlannerOption func(*CapacityPlanner)

// WithMaxDays sets the longest plan the planner will produce.
func WithMaxDays(days int) PlannerOption {
	return func(p *CapacityPlanner) {
		if days > 0 {
			p.maxDays = days
		}
	}
}

// CapacityPlanner partitions a pool into day buckets whose energy never
// exceeds dailyCap + excessCap.
type CapacityPlanner struct {
	maxDays int
}

// NewCapacityPlanner creates a planner with the given options.
func NewCapacityPlanner(opts ...PlannerOption) *CapacityPlanner {
	p := &CapacityPlanner{maxDays: DefaultMaxDays}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxDays returns the configured plan length limit.
func (p *CapacityPlanner) MaxDays() int {
	return p.maxDays
}

// Plan splits items into consecutive day buckets.
//
// Every day takes min(cap, remaining energy) kcal, spread over the items in
// proportion to their remaining energy. Leftover budget caused by clamping is
// topped up in pool order. Items with zero mass are dropped before planning.
func (p *CapacityPlanner) Plan(items []model.Item, resolver DensityResolver, dailyCap, excessCap float64) ([]model.DayBucket, error) {
	capPerDay, err := validateCapacity(dailyCap, excessCap)
	if err != nil {
		return nil, err
	}

	pool, err := filterPool(items)
	if err != nil {
		return nil, err
	}

	state, err := newPlanState(pool, resolver)
	if err != nil {
		return nil, err
	}

	totalKcal := state.energy()
	estimate := totalKcal / capPerDay
	if estimate > float64(p.maxDays) {
		return nil, fmt.Errorf("%w: pool of %.2f kcal needs %.0f days at %.2f kcal/day, limit is %d",
			ErrPlanTooLong, totalKcal, math.Ceil(estimate), capPerDay, p.maxDays)
	}
	limit := int(math.Ceil(estimate)) + convergenceSlack

	log := logger.Component("planner")
	days := make([]model.DayBucket, 0, limit)
	for state.hasMass() {
		if state.energy() <= massEpsilon {
			if left := state.mass(); left > conservationTolerance {
				return nil, fmt.Errorf("%w: %.6f g left with no remaining energy", ErrAllocationDidNotConverge, left)
			}
			break
		}
		if len(days) >= limit {
			return nil, fmt.Errorf("%w: %.6f kcal left after %d days", ErrAllocationDidNotConverge, state.energy(), len(days))
		}

		var bucket model.DayBucket
		bucket, state = state.step(capPerDay)
		days = append(days, bucket)

		log.Debug().
			Int("day", len(days)).
			Float64("kcal", bucket.Kcal).
			Int("items", len(bucket.Items)).
			Msg("Planned day")
	}

	return days, nil
}

func validateCapacity(dailyCap, excessCap float64) (float64, error) {
	if math.IsNaN(dailyCap) || math.IsNaN(excessCap) || excessCap < 0 {
		return 0, fmt.Errorf("%w: daily cap %v, excess cap %v", ErrInvalidCapacity, dailyCap, excessCap)
	}
	capPerDay := dailyCap + excessCap
	if capPerDay <= 0 || math.IsInf(capPerDay, 0) {
		return 0, fmt.Errorf("%w: daily cap %v + excess cap %v must be positive", ErrInvalidCapacity, dailyCap, excessCap)
	}
	return capPerDay, nil
}

// filterPool rejects invalid masses and drops zero-mass items.
func filterPool(items []model.Item) ([]model.Item, error) {
	pool := make([]model.Item, 0, len(items))
	for _, item := range items {
		if !model.ValidMass(item.Grams) {
			return nil, fmt.Errorf("%w: item %q has mass %v", ErrInvalidMass, item.Name, item.Grams)
		}
		if item.Grams == 0 {
			continue
		}
		pool = append(pool, item)
	}
	return pool, nil
}

// planState is the remaining pool between two planning steps.
// A state is never mutated once built.
type planState struct {
	names     []string
	perGram   []float64
	remaining []float64
}

func newPlanState(pool []model.Item, resolver DensityResolver) (planState, error) {
	n := len(pool)
	s := planState{
		names:     make([]string, n),
		perGram:   make([]float64, n),
		remaining: make([]float64, n),
	}
	for i, item := range pool {
		density := resolver.Resolve(item.Name)
		if !(density > 0) || math.IsInf(density, 0) {
			return planState{}, fmt.Errorf("%w: item %q resolved to density %v", ErrAllocationDidNotConverge, item.Name, density)
		}
		s.names[i] = item.Name
		s.perGram[i] = density / 100
		s.remaining[i] = item.Grams
	}
	return s, nil
}

func (s planState) energy() float64 {
	if len(s.remaining) == 0 {
		return 0
	}
	return floats.Dot(s.remaining, s.perGram)
}

func (s planState) mass() float64 {
	if len(s.remaining) == 0 {
		return 0
	}
	return floats.Sum(s.remaining)
}

func (s planState) hasMass() bool {
	for _, m := range s.remaining {
		if m > massEpsilon {
			return true
		}
	}
	return false
}

// step plans one day and returns it together with the state that follows.
func (s planState) step(capPerDay float64) (model.DayBucket, planState) {
	n := len(s.remaining)
	energy := floats.MulTo(make([]float64, n), s.remaining, s.perGram)
	total := floats.Sum(energy)
	target := math.Min(capPerDay, total)

	grams := make([]float64, n)
	for i, m := range s.remaining {
		if m <= massEpsilon {
			continue
		}
		share := target * energy[i] / total
		grams[i] = math.Min(m, share/s.perGram[i])
	}

	dayKcal := floats.Dot(grams, s.perGram)
	if dayKcal > target+energyEpsilon {
		floats.Scale(target/dayKcal, grams)
	} else {
		residual := target - dayKcal
		for i, m := range s.remaining {
			if residual <= energyEpsilon {
				break
			}
			if m <= massEpsilon {
				continue
			}
			room := math.Max(0, m-grams[i])
			add := math.Min(room, residual/s.perGram[i])
			grams[i] += add
			residual -= add * s.perGram[i]
		}
	}

	next := planState{
		names:     s.names,
		perGram:   s.perGram,
		remaining: make([]float64, n),
	}
	var bucket model.DayBucket
	for i, g := range grams {
		g = math.Max(0, math.Min(g, s.remaining[i]))
		left := s.remaining[i] - g
		if left < massEpsilon {
			left = 0
		}
		next.remaining[i] = left

		if g > 0 {
			bucket.Items = append(bucket.Items, model.Item{Name: s.names[i], Grams: g})
			bucket.Kcal += g * s.perGram[i]
		}
	}

	return bucket, next
}
