package service

import (
	"fmt"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// SlotDistributor spreads one day's items evenly over its meal slots.
type SlotDistributor struct{}

// Distribute puts every item of the day into every active slot with
// grams/mealsPerDay each. Only 4 and 5 meals per day are supported.
func (SlotDistributor) Distribute(items []model.Item, mealsPerDay int) (model.SlotAssignment, error) {
	slots := model.Slots(mealsPerDay)
	if slots == nil {
		return model.SlotAssignment{}, fmt.Errorf("%w: %d meals per day, expected 4 or 5", ErrInvalidSlotCount, mealsPerDay)
	}

	meals := make([]model.Meal, len(slots))
	for i, slot := range slots {
		portion := make([]model.Item, len(items))
		for j, item := range items {
			portion[j] = model.Item{Name: item.Name, Grams: item.Grams / float64(mealsPerDay)}
		}
		meals[i] = model.Meal{Slot: slot, Items: portion}
	}

	return model.SlotAssignment{Meals: meals}, nil
}
