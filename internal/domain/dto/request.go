// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"
	"strings"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// ItemRequest is one weighed product of a pool.
type ItemRequest struct {
	Name  string  `json:"name" binding:"required" example:"rice"`
	Grams float64 `json:"grams" example:"1000"`
} // @name ItemRequest

// SingleDayRequest asks for one day of meals without an energy cap.
//
// @Description Request to split a pool over the meal slots of a single day
// @Example {"items": [{"name": "rice", "grams": 400}], "meals_per_day": 4}
type SingleDayRequest struct {
	Items []ItemRequest `json:"items" binding:"required,min=1,dive"`
	// MealsPerDay is 4 or 5; 0 uses the server default.
	MealsPerDay int `json:"meals_per_day" example:"4"`
} // @name SingleDayRequest

// PlanRequest asks for a full meal plan.
//
// DailyCap may be omitted when Profile is given; the profile's daily
// calories and meal count are used instead. Catalog replaces the active
// density catalog for this request only.
//
// @Description Request to allocate a pool of products over days and meals
// @Example {"items": [{"name": "rice", "grams": 1000}, {"name": "chicken", "grams": 500}], "daily_cap": 2000}
type PlanRequest struct {
	Items           []ItemRequest        `json:"items" binding:"required,min=1,dive"`
	DailyCap        float64              `json:"daily_cap" example:"2000"`
	ExcessCap       float64              `json:"excess_cap" example:"0"`
	MealsPerDay     int                  `json:"meals_per_day" example:"4"`
	ThresholdFactor *float64             `json:"threshold_factor,omitempty" example:"1.5"`
	Profile         *ProfileRequest      `json:"profile,omitempty"`
	Catalog         []model.CatalogEntry `json:"catalog,omitempty"`
} // @name PlanRequest

// ResolveRequest asks how names resolve against the active catalog.
//
// @Example {"names": ["boiled rice", "quinoa"]}
type ResolveRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
} // @name ResolveRequest

// ProfileRequest carries the body parameters of a user.
//
// @Description Body parameters used to derive daily targets
// @Example {"gender": "male", "age": 30, "weight_kg": 80, "height_cm": 180, "activity": "moderate", "goal": "balance"}
type ProfileRequest struct {
	Gender   string  `json:"gender" binding:"required,oneof=male female" example:"male"`
	Age      int     `json:"age" binding:"required" example:"30"`
	WeightKg float64 `json:"weight_kg" binding:"required" example:"80"`
	HeightCm float64 `json:"height_cm" binding:"required" example:"180"`
	Activity string  `json:"activity" binding:"required" example:"moderate"`
	Goal     string  `json:"goal" binding:"required" example:"balance"`
} // @name ProfileRequest

// UpdateCatalogRequest replaces the active density catalog.
type UpdateCatalogRequest struct {
	Entries []model.CatalogEntry `json:"entries" binding:"required,min=1"`
} // @name UpdateCatalogRequest

// ValidationError represents a field validation error. Err, when set, is
// the domain error the field violates.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

var (
	// ErrEmptyPool is returned when a request has no items.
	ErrEmptyPool = &ValidationError{
		Field:   "items",
		Message: "must contain at least one item",
	}
	// ErrInvalidThresholdFactor is returned for a non-positive threshold factor.
	ErrInvalidThresholdFactor = &ValidationError{
		Field:   "threshold_factor",
		Message: "must be positive",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap returns the domain error behind the validation failure.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validateItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrEmptyPool
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].name", i), Message: "is required"}
		}
		// Checked per entry since ToItems sums duplicate names.
		if !model.ValidMass(item.Grams) {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].grams", i),
				Message: "must be a non-negative number",
				Err:     model.ErrInvalidMass,
			}
		}
	}
	return nil
}

// Validate checks item names and raw masses. Meal counts are left to
// the engine.
func (r *SingleDayRequest) Validate() error {
	return validateItems(r.Items)
}

// Validate checks item names, raw masses and the threshold factor.
// Capacities and meal counts are left to the engine.
func (r *PlanRequest) Validate() error {
	if err := validateItems(r.Items); err != nil {
		return err
	}
	if r.ThresholdFactor != nil && !(*r.ThresholdFactor > 0) {
		return ErrInvalidThresholdFactor
	}
	return nil
}

// ToItems converts request items to domain items, merging duplicate names.
// Call Validate first so negative masses are rejected before the merge.
func ToItems(items []ItemRequest) []model.Item {
	out := make([]model.Item, len(items))
	for i, item := range items {
		out[i] = model.Item{Name: item.Name, Grams: item.Grams}
	}
	return model.MergeItems(out)
}

// ToModel converts the request to a domain profile.
func (r ProfileRequest) ToModel() model.Profile {
	return model.Profile{
		Gender:   model.Gender(strings.ToLower(r.Gender)),
		Age:      r.Age,
		WeightKg: r.WeightKg,
		HeightCm: r.HeightCm,
		Activity: model.ActivityLevel(strings.ToLower(r.Activity)),
		Goal:     model.Goal(strings.ToLower(r.Goal)),
	}
}
