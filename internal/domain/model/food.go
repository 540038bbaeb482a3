// Package model defines the core domain entities for the allocation service.
package model

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidMass is returned for negative or non-finite item masses.
var ErrInvalidMass = errors.New("invalid mass")

// Item is a named mass of food in grams.
//
// @Description Food item with its mass in grams
// @Example {"name": "rice", "grams": 1000}
type Item struct {
	// Name is the case-folded product name
	Name string `json:"name" example:"rice"`
	// Grams is the mass of the item
	Grams float64 `json:"grams" example:"1000"`
}

// Kcal returns the energy of grams of food with the given density in kcal per 100 g.
func Kcal(grams, kcalPer100g float64) float64 {
	return grams * kcalPer100g / 100
}

// ValidMass reports whether grams is a finite, non-negative mass.
func ValidMass(grams float64) bool {
	return !math.IsNaN(grams) && !math.IsInf(grams, 0) && grams >= 0
}

// NormalizeName case-folds and trims a product name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeItems case-folds item names and sums the masses of duplicates.
// Masses must be checked with ValidMass first; a negative duplicate would
// otherwise be hidden by the sum.
// The first occurrence of a name fixes its position in the result.
func MergeItems(items []Item) []Item {
	merged := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		name := NormalizeName(item.Name)
		if i, ok := index[name]; ok {
			merged[i].Grams += item.Grams
			continue
		}
		index[name] = len(merged)
		merged = append(merged, Item{Name: name, Grams: item.Grams})
	}
	return merged
}

// DayBucket is the part of a pool assigned to one day, in pool order.
type DayBucket struct {
	Items []Item  `json:"items"`
	Kcal  float64 `json:"kcal" example:"2000"`
}

// Slot is a meal label within a day.
type Slot string

const (
	SlotBreakfast   Slot = "breakfast"
	SlotSnack       Slot = "snack"
	SlotLunch       Slot = "lunch"
	SlotDinner      Slot = "dinner"
	SlotSecondSnack Slot = "second_snack"
)

var (
	fourSlots = []Slot{SlotBreakfast, SlotSnack, SlotLunch, SlotDinner}
	fiveSlots = []Slot{SlotBreakfast, SlotSnack, SlotLunch, SlotDinner, SlotSecondSnack}
)

// Slots returns the active slot labels for a day with mealsPerDay meals,
// or nil when the count is not supported.
func Slots(mealsPerDay int) []Slot {
	switch mealsPerDay {
	case 4:
		return append([]Slot(nil), fourSlots...)
	case 5:
		return append([]Slot(nil), fiveSlots...)
	default:
		return nil
	}
}

// Meal is the list of items eaten in one slot.
type Meal struct {
	Slot  Slot   `json:"slot" example:"breakfast"`
	Items []Item `json:"items"`
}

// SlotAssignment maps each active slot of one day to its items.
// Meals are kept in slot order.
type SlotAssignment struct {
	Meals []Meal `json:"meals"`
}

// Items returns the items of the given slot.
func (a SlotAssignment) Items(slot Slot) ([]Item, bool) {
	for _, m := range a.Meals {
		if m.Slot == slot {
			return m.Items, true
		}
	}
	return nil, false
}

// Labels returns the slot labels in order.
func (a SlotAssignment) Labels() []Slot {
	labels := make([]Slot, 0, len(a.Meals))
	for _, m := range a.Meals {
		labels = append(labels, m.Slot)
	}
	return labels
}

// PlanMode tells how a pool was laid out over days.
type PlanMode string

const (
	ModeSingleDay PlanMode = "single_day"
	ModeMultiDay  PlanMode = "multi_day"
)

// DayPlan is one day of a meal plan.
type DayPlan struct {
	Day   int            `json:"day" example:"1"`
	Kcal  float64        `json:"kcal" example:"2000"`
	Meals SlotAssignment `json:"meals"`
}

// MealPlan is the complete result of an allocation.
//
// @Description Allocation result with one entry per planned day
type MealPlan struct {
	Mode             PlanMode  `json:"mode" example:"multi_day"`
	TotalKcal        float64   `json:"total_kcal" example:"4265"`
	DailyCap         float64   `json:"daily_cap" example:"2000"`
	ExcessCap        float64   `json:"excess_cap" example:"0"`
	MealsPerDay      int       `json:"meals_per_day" example:"4"`
	DensityFallbacks int       `json:"density_fallbacks" example:"0"`
	CatalogVersion   int       `json:"catalog_version,omitempty" example:"1"`
	Days             []DayPlan `json:"days"`
}

// DayCount returns the number of planned days.
func (p MealPlan) DayCount() int {
	return len(p.Days)
}
