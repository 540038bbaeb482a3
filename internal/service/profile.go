package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// ErrInvalidProfile is returned for profiles outside the supported ranges.
var ErrInvalidProfile = errors.New("invalid profile")

// Supported profile ranges.
const (
	MinAge      = 10
	MaxAge      = 100
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MinHeightCm = 100.0
	MaxHeightCm = 250.0
)

var activityFactors = map[model.ActivityLevel]float64{
	model.ActivityMinimal:  1.2,
	model.ActivityLight:    1.375,
	model.ActivityModerate: 1.55,
	model.ActivityHigh:     1.725,
	model.ActivityExtreme:  1.9,
}

type goalRule struct {
	calorieFactor float64
	proteinShare  float64
	fatShare      float64
	carbsShare    float64
	mealsPerDay   int
}

var goalRules = map[model.Goal]goalRule{
	model.GoalWeightLoss: {calorieFactor: 0.8, proteinShare: 0.30, fatShare: 0.25, carbsShare: 0.45, mealsPerDay: 4},
	model.GoalBalance:    {calorieFactor: 0.9, proteinShare: 0.25, fatShare: 0.30, carbsShare: 0.45, mealsPerDay: 4},
	model.GoalWeightGain: {calorieFactor: 1.1, proteinShare: 0.25, fatShare: 0.25, carbsShare: 0.50, mealsPerDay: 5},
}

// kcal per gram of each macronutrient.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramFat     = 9.0
	kcalPerGramCarbs   = 4.0
)

// ProfileCalculator derives daily targets from body parameters.
type ProfileCalculator struct{}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal.
func (ProfileCalculator) BMR(gender model.Gender, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == model.GenderMale {
		return base + 5
	}
	return base - 161
}

// Validate checks that every field is set and within range.
func (ProfileCalculator) Validate(p model.Profile) error {
	switch {
	case p.Gender != model.GenderMale && p.Gender != model.GenderFemale:
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	case p.Age < MinAge || p.Age > MaxAge:
		return fmt.Errorf("%w: age %d outside %d-%d", ErrInvalidProfile, p.Age, MinAge, MaxAge)
	case math.IsNaN(p.WeightKg) || p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg:
		return fmt.Errorf("%w: weight %v kg outside %v-%v", ErrInvalidProfile, p.WeightKg, MinWeightKg, MaxWeightKg)
	case math.IsNaN(p.HeightCm) || p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm:
		return fmt.Errorf("%w: height %v cm outside %v-%v", ErrInvalidProfile, p.HeightCm, MinHeightCm, MaxHeightCm)
	}
	if _, ok := activityFactors[p.Activity]; !ok {
		return fmt.Errorf("%w: unknown activity %q", ErrInvalidProfile, p.Activity)
	}
	if _, ok := goalRules[p.Goal]; !ok {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, p.Goal)
	}
	return nil
}

// Targets computes daily calories, macronutrients and meal count for p.
// Daily calories are truncated to whole kcal before macros are derived.
func (c ProfileCalculator) Targets(p model.Profile) (model.Targets, error) {
	if err := c.Validate(p); err != nil {
		return model.Targets{}, err
	}

	rule := goalRules[p.Goal]
	bmr := c.BMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	calories := int(bmr * activityFactors[p.Activity] * rule.calorieFactor)
	kcal := float64(calories)

	return model.Targets{
		BMR:           bmr,
		DailyCalories: calories,
		ProteinGrams:  kcal * rule.proteinShare / kcalPerGramProtein,
		FatGrams:      kcal * rule.fatShare / kcalPerGramFat,
		CarbsGrams:    kcal * rule.carbsShare / kcalPerGramCarbs,
		MealsPerDay:   rule.mealsPerDay,
	}, nil
}
