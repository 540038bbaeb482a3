package model

// Gender selects the BMR formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel is the self-reported physical activity.
type ActivityLevel string

const (
	ActivityMinimal  ActivityLevel = "minimal"
	ActivityLight    ActivityLevel = "light"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
	ActivityExtreme  ActivityLevel = "extreme"
)

// Goal is the user's weight goal.
type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalBalance    Goal = "balance"
	GoalWeightGain Goal = "weight_gain"
)

// Profile holds the body parameters used to derive daily targets.
type Profile struct {
	Gender   Gender        `json:"gender" example:"male"`
	Age      int           `json:"age" example:"30"`
	WeightKg float64       `json:"weight_kg" example:"80"`
	HeightCm float64       `json:"height_cm" example:"180"`
	Activity ActivityLevel `json:"activity" example:"moderate"`
	Goal     Goal          `json:"goal" example:"balance"`
}

// Targets are the daily energy and macronutrient targets for a profile.
//
// @Description Daily targets derived from a profile
type Targets struct {
	BMR           float64 `json:"bmr" example:"1780"`
	DailyCalories int     `json:"daily_calories" example:"2483"`
	ProteinGrams  float64 `json:"protein_g" example:"155.2"`
	FatGrams      float64 `json:"fat_g" example:"82.8"`
	CarbsGrams    float64 `json:"carbs_g" example:"279.3"`
	MealsPerDay   int     `json:"meals_per_day" example:"4"`
}
